package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/calculator"
	"github.com/solarsavers/solarsavers-api/internal/config"
	"github.com/solarsavers/solarsavers-api/internal/metrics"
)

// WeatherProvider returns the solar weather factor for a city. It never
// fails; lookups that cannot complete yield the default factor.
type WeatherProvider interface {
	Factor(ctx context.Context, city string) float64
}

// WeatherService derives the factor from current cloud cover reported by
// OpenWeatherMap: 1 - clouds/200, clamped to the calculator's bounds.
type WeatherService struct {
	cfg    config.WeatherConfig
	consts calculator.Constants
	client *http.Client
}

type owmCurrent struct {
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
}

func NewWeatherService(cfg config.WeatherConfig, consts calculator.Constants) *WeatherService {
	return &WeatherService{
		cfg:    cfg,
		consts: consts,
		client: &http.Client{},
	}
}

func (s *WeatherService) Factor(ctx context.Context, city string) float64 {
	if s.cfg.APIKey == "" {
		metrics.WeatherLookups.WithLabelValues("disabled").Inc()
		return s.consts.DefaultWeatherFactor
	}

	factor, err := s.lookup(ctx, city)
	if err != nil {
		metrics.WeatherLookups.WithLabelValues("fallback").Inc()
		logrus.WithError(err).WithField("city", city).Warn("Weather lookup failed, using default factor")
		return s.consts.DefaultWeatherFactor
	}

	metrics.WeatherLookups.WithLabelValues("success").Inc()
	return factor
}

func (s *WeatherService) lookup(ctx context.Context, city string) (float64, error) {
	timeout := time.Duration(s.cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query := url.Values{}
	query.Set("q", strings.TrimSpace(city)+",IN")
	query.Set("appid", s.cfg.APIKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("weather request: unexpected status %d", resp.StatusCode)
	}

	var body owmCurrent
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode weather response: %w", err)
	}

	return s.consts.ClampWeather(1 - body.Clouds.All/200), nil
}
