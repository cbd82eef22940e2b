// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
	}
}

// POST /uploads/images
func (h *UploadHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyMissingFile), nil)
		return
	}
	defer file.Close()

	options := h.storageService.GetDefaultUploadOptions(c.DefaultPostForm("category", "products"))

	result, err := h.storageService.UploadFile(c.Request.Context(), file, header, options)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}
