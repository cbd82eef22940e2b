// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, stats)
}

// GET /admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	var filter services.AdminUserFilter
	if !bindParams(c, &filter) {
		return
	}

	users, err := h.adminService.GetUsers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, users)
}

// PUT /admin/vendors/:id/approve
func (h *AdminHandler) ApproveVendor(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}

	vendor, err := h.adminService.ApproveVendor(c.Request.Context(), c.Param("id"), admin.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyVendorApproved),
		"vendor":  vendor,
	})
}
