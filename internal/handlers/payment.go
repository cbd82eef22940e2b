// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// POST /payments/orders/:id/intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	intent, err := h.paymentService.CreateOrderPaymentIntent(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, intent)
}

// POST /payments/orders/:id/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.ConfirmPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.paymentService.ConfirmPayment(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}
