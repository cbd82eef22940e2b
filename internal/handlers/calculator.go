// internal/handlers/calculator.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type CalculatorHandler struct {
	calculatorService *services.CalculatorService
}

func NewCalculatorHandler(calculatorService *services.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{
		calculatorService: calculatorService,
	}
}

// POST /calculator/calculate
// POST /calculator
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	var req services.CalculateRequest
	if !bindJSON(c, &req) {
		return
	}

	detailed := false
	if v := utils.QueryBool(c, "breakdown"); v != nil {
		detailed = *v
	}

	result, err := h.calculatorService.Calculate(c.Request.Context(), &req, detailed)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}
