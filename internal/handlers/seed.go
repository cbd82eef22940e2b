// internal/handlers/seed.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type SeedHandler struct {
	seedService *services.SeedService
}

func NewSeedHandler(seedService *services.SeedService) *SeedHandler {
	return &SeedHandler{
		seedService: seedService,
	}
}

// POST /seed
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seedService.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	if !result.Seeded {
		utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyAlreadySeeded)})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":        i18n.T(lang, i18n.KeySeeded),
		"products_count": result.ProductsCount,
	})
}
