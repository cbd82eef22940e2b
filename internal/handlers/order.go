// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, order)
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	h.respondOrders(c, func() ([]models.Order, error) {
		return h.orderService.List(c.Request.Context(), user)
	})
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, order)
}

// PUT /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderStatusSet, order.Status),
		"order":   order,
	})
}

// GET /vendor/orders
func (h *OrderHandler) VendorOrders(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	h.respondOrders(c, func() ([]models.Order, error) {
		return h.orderService.VendorOrders(c.Request.Context(), vendor.ID)
	})
}

// GET /vendor/assigned-orders
func (h *OrderHandler) AssignedOrders(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	h.respondOrders(c, func() ([]models.Order, error) {
		return h.orderService.AssignedOrders(c.Request.Context(), vendor.ID)
	})
}

// GET /admin/orders/pending-assignment
func (h *OrderHandler) PendingAssignment(c *gin.Context) {
	h.respondOrders(c, func() ([]models.Order, error) {
		return h.orderService.PendingAssignment(c.Request.Context())
	})
}

// GET /admin/orders/:id/available-vendors
func (h *OrderHandler) AvailableVendors(c *gin.Context) {
	options, err := h.orderService.AvailableVendors(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, options)
}

// PUT /admin/orders/:id/assign
func (h *OrderHandler) AssignOrder(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.AssignOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Assign(c.Request.Context(), admin, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderAssignedTo, order.AssignedVendorName),
		"order":   order,
	})
}

func (h *OrderHandler) respondOrders(c *gin.Context, list func() ([]models.Order, error)) {
	orders, err := list()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, orders)
}
