package services

import (
	"context"
	"strings"

	"github.com/solarsavers/solarsavers-api/internal/calculator"
	"github.com/solarsavers/solarsavers-api/internal/metrics"
)

type CalculatorService struct {
	consts  calculator.Constants
	weather WeatherProvider
}

type CalculateRequest struct {
	MonthlyBill    float64 `json:"monthly_bill" validate:"required,gt=0"`
	PropertyType   string  `json:"property_type" validate:"required,max=20"`
	City           string  `json:"city" validate:"required,max=100"`
	BackupRequired bool    `json:"backup_required"`
}

type CalculationResponse struct {
	calculator.Result
	Breakdown *calculator.Breakdown `json:"breakdown,omitempty"`
}

func NewCalculatorService(consts calculator.Constants, weather WeatherProvider) *CalculatorService {
	return &CalculatorService{
		consts:  consts,
		weather: weather,
	}
}

// Calculate sizes a system for the request. The breakdown of intermediate
// values is included when detailed is set.
func (s *CalculatorService) Calculate(ctx context.Context, req *CalculateRequest, detailed bool) (*CalculationResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	propertyType := calculator.PropertyType(strings.ToLower(strings.TrimSpace(req.PropertyType)))
	input := calculator.Input{
		MonthlyBill:    req.MonthlyBill,
		PropertyType:   propertyType,
		City:           req.City,
		BackupRequired: req.BackupRequired,
	}

	factor := s.consts.DefaultWeatherFactor
	if s.weather != nil {
		factor = s.weather.Factor(ctx, calculator.NormalizeCity(req.City))
	}

	result, breakdown := calculator.CalculateWithBreakdown(s.consts, input, factor)
	metrics.CalculatorRuns.WithLabelValues(string(propertyType)).Inc()

	resp := &CalculationResponse{Result: result}
	if detailed {
		resp.Breakdown = &breakdown
	}
	return resp, nil
}
