// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

// UserHandler serves the vendor directory and the vendor's own dashboard.
type UserHandler struct {
	userService    *services.UserService
	productService *services.ProductService
}

func NewUserHandler(userService *services.UserService, productService *services.ProductService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		productService: productService,
	}
}

// GET /vendors
func (h *UserHandler) ListVendors(c *gin.Context) {
	vendors, err := h.userService.ListVendors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, vendors)
}

// GET /vendors/:id
func (h *UserHandler) GetVendor(c *gin.Context) {
	vendor, err := h.userService.GetVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, vendor)
}

// GET /vendor/dashboard
func (h *UserHandler) VendorDashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.userService.GetVendorDashboard(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, stats)
}

// GET /vendor/products
func (h *UserHandler) VendorProducts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	products, err := h.productService.VendorProducts(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, products)
}
