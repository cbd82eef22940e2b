// Package calculator sizes a rooftop solar system from a monthly electricity
// bill. Calculate is pure: the weather factor is supplied by the caller.
package calculator

import (
	"math"
	"strings"
)

type PropertyType string

const (
	PropertyHome       PropertyType = "home"
	PropertyCommercial PropertyType = "commercial"
)

// CityProfile holds the location constants used for sizing.
type CityProfile struct {
	PeakSunHours float64 `json:"peak_sun_hours"`
	Tariff       float64 `json:"tariff"` // per kWh
}

// SubsidyBand grants Amount to residential systems up to MaxSizeKW.
type SubsidyBand struct {
	MaxSizeKW float64
	Amount    float64
}

// Constants is the single table of jurisdictional values the pipeline uses.
type Constants struct {
	Cities      map[string]CityProfile
	DefaultCity CityProfile

	DaysPerMonth     float64
	SystemLosses     float64
	BackupMultiplier float64
	SizeStep         float64
	MinSizeKW        float64
	PanelWattage     float64

	CostPerWatt map[PropertyType]float64
	// SubsidyBands must be sorted by MaxSizeKW; sizes above the last band get SubsidyCap.
	SubsidyBands []SubsidyBand
	SubsidyCap   float64

	Utilization     float64
	FallbackPayback float64
	CO2PerKWh       float64

	DefaultWeatherFactor float64
	MinWeatherFactor     float64
	MaxWeatherFactor     float64
}

// DefaultConstants returns a fresh copy of the Indian market table.
func DefaultConstants() Constants {
	delhiNCR := CityProfile{PeakSunHours: 5.5, Tariff: 8.0}
	bangalore := CityProfile{PeakSunHours: 5.2, Tariff: 7.5}

	return Constants{
		Cities: map[string]CityProfile{
			"delhi":      delhiNCR,
			"mumbai":     {PeakSunHours: 5.0, Tariff: 9.5},
			"bangalore":  bangalore,
			"bengaluru":  bangalore,
			"chennai":    {PeakSunHours: 5.8, Tariff: 6.5},
			"kolkata":    {PeakSunHours: 4.8, Tariff: 8.0},
			"hyderabad":  {PeakSunHours: 5.5, Tariff: 8.5},
			"pune":       {PeakSunHours: 5.3, Tariff: 9.0},
			"ahmedabad":  {PeakSunHours: 5.8, Tariff: 5.5},
			"jaipur":     {PeakSunHours: 6.0, Tariff: 7.0},
			"lucknow":    {PeakSunHours: 5.2, Tariff: 7.0},
			"chandigarh": {PeakSunHours: 5.5, Tariff: 6.5},
			"noida":      delhiNCR,
			"gurgaon":    delhiNCR,
			"gurugram":   delhiNCR,
		},
		DefaultCity: CityProfile{PeakSunHours: 5.0, Tariff: 7.5},

		DaysPerMonth:     30,
		SystemLosses:     0.80,
		BackupMultiplier: 1.25,
		SizeStep:         0.5,
		MinSizeKW:        1.0,
		PanelWattage:     400,

		CostPerWatt: map[PropertyType]float64{
			PropertyHome:       45,
			PropertyCommercial: 40,
		},
		SubsidyBands: []SubsidyBand{
			{MaxSizeKW: 2, Amount: 30000},
			{MaxSizeKW: 3, Amount: 60000},
		},
		SubsidyCap: 78000,

		Utilization:     0.95,
		FallbackPayback: 10,
		CO2PerKWh:       0.82,

		DefaultWeatherFactor: 0.85,
		MinWeatherFactor:     0.5,
		MaxWeatherFactor:     1.0,
	}
}

type Input struct {
	MonthlyBill    float64      `json:"monthly_bill"`
	PropertyType   PropertyType `json:"property_type"`
	City           string       `json:"city"`
	BackupRequired bool         `json:"backup_required"`
}

type Result struct {
	RecommendedSizeKW float64 `json:"recommended_size_kw"`
	EstimatedCost     float64 `json:"estimated_cost"`
	AnnualSavings     float64 `json:"annual_savings"`
	PaybackYears      float64 `json:"payback_years"`
	CO2ReductionKg    float64 `json:"co2_reduction_kg"`
}

// Breakdown exposes the intermediate values of one calculation.
type Breakdown struct {
	City                CityProfile `json:"city"`
	WeatherFactor       float64     `json:"weather_factor"`
	DailyConsumptionKWh float64     `json:"daily_consumption_kwh"`
	EffectiveSunHours   float64     `json:"effective_sun_hours"`
	RequiredSizeKW      float64     `json:"required_size_kw"`
	PanelCount          int         `json:"panel_count"`
	GrossCost           float64     `json:"gross_cost"`
	Subsidy             float64     `json:"subsidy"`
	AnnualGenerationKWh float64     `json:"annual_generation_kwh"`
}

// NormalizeCity is the lookup key for a city name.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Location resolves the city profile, falling back to the default tuple.
func (c Constants) Location(city string) CityProfile {
	if profile, ok := c.Cities[NormalizeCity(city)]; ok {
		return profile
	}
	return c.DefaultCity
}

// ClampWeather bounds a cloud-derived factor to the configured range.
func (c Constants) ClampWeather(factor float64) float64 {
	return math.Max(c.MinWeatherFactor, math.Min(c.MaxWeatherFactor, factor))
}

func (c Constants) subsidy(pt PropertyType, sizeKW float64) float64 {
	if pt != PropertyHome {
		return 0
	}
	for _, band := range c.SubsidyBands {
		if sizeKW <= band.MaxSizeKW {
			return band.Amount
		}
	}
	return c.SubsidyCap
}

// Calculate runs the sizing pipeline.
func Calculate(c Constants, in Input, weatherFactor float64) Result {
	result, _ := CalculateWithBreakdown(c, in, weatherFactor)
	return result
}

func CalculateWithBreakdown(c Constants, in Input, weatherFactor float64) (Result, Breakdown) {
	loc := c.Location(in.City)

	daily := in.MonthlyBill / loc.Tariff / c.DaysPerMonth
	effective := loc.PeakSunHours * c.SystemLosses * weatherFactor
	required := daily / effective
	if in.BackupRequired {
		required *= c.BackupMultiplier
	}

	// Ties round to the even step.
	size := math.RoundToEven(required/c.SizeStep) * c.SizeStep
	size = math.Max(c.MinSizeKW, size)

	panels := int(math.RoundToEven(size * 1000 / c.PanelWattage))

	costPerWatt, ok := c.CostPerWatt[in.PropertyType]
	if !ok {
		costPerWatt = c.CostPerWatt[PropertyCommercial]
	}
	gross := size * 1000 * costPerWatt
	subsidy := c.subsidy(in.PropertyType, size)
	net := gross - subsidy

	annualGen := size * loc.PeakSunHours * 365 * c.SystemLosses
	savings := annualGen * loc.Tariff * c.Utilization

	payback := c.FallbackPayback
	if savings > 0 {
		payback = net / savings
	}

	result := Result{
		RecommendedSizeKW: size,
		EstimatedCost:     roundTo(net, 2),
		AnnualSavings:     roundTo(savings, 2),
		PaybackYears:      roundTo(payback, 1),
		CO2ReductionKg:    roundTo(annualGen*c.CO2PerKWh, 1),
	}
	breakdown := Breakdown{
		City:                loc,
		WeatherFactor:       weatherFactor,
		DailyConsumptionKWh: daily,
		EffectiveSunHours:   effective,
		RequiredSizeKW:      required,
		PanelCount:          panels,
		GrossCost:           gross,
		Subsidy:             subsidy,
		AnnualGenerationKWh: annualGen,
	}
	return result, breakdown
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}
