// Package service fetches CWA forecasts and normalizes them for the HTTP API
// and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/twweather/internal/adapters/cwa"
	"github.com/okian/twweather/internal/domain/city"
	"github.com/okian/twweather/internal/domain/forecast"
	"github.com/okian/twweather/pkg/logger"
	"github.com/okian/twweather/pkg/metrics"
)

// Upstream outcome labels recorded per call.
const (
	outcomeOK       = "ok"
	outcomeUpstream = "upstream_error"
	outcomeError    = "error"
)

// Fetcher is the upstream transport used by the Service.
type Fetcher interface {
	Forecast(ctx context.Context, apiKey, locale string) (*forecast.Response, error)
}

// Service implements forecast lookups. It holds no mutable state, so one
// instance serves concurrent requests.
type Service struct {
	apiKey  string
	fetcher Fetcher
	logger  logger.Logger
}

var _ Fetcher = (*cwa.Client)(nil)

// New constructs a Service. Without WithFetcher it talks to the public CWA API.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetcher == nil {
		s.fetcher = cwa.New()
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	return s
}

// Forecast resolves key and returns its normalized forecast.
func (s *Service) Forecast(ctx context.Context, key city.Key) (forecast.Forecast, error) {
	locale, err := city.Resolve(key)
	if err != nil {
		return forecast.Forecast{}, err
	}
	return s.fetch(ctx, key.String(), locale)
}

// FetchForecast returns the normalized forecast for an upstream locale name.
func (s *Service) FetchForecast(ctx context.Context, locale string) (forecast.Forecast, error) {
	return s.fetch(ctx, locale, locale)
}

func (s *Service) fetch(ctx context.Context, label, locale string) (forecast.Forecast, error) {
	if s.apiKey == "" {
		return forecast.Forecast{}, &forecast.MissingCredentialError{}
	}

	start := time.Now()
	resp, err := s.fetcher.Forecast(ctx, s.apiKey, locale)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		outcome := outcomeError
		if errors.Is(err, forecast.ErrUpstream) {
			outcome = outcomeUpstream
		}
		metrics.RecordUpstreamRequest(label, outcome, latencyMs)
		return forecast.Forecast{}, fmt.Errorf("fetch forecast for %s: %w", locale, err)
	}
	metrics.RecordUpstreamRequest(label, outcomeOK, latencyMs)

	out, err := forecast.Normalize(resp, locale)
	if err != nil {
		return forecast.Forecast{}, err
	}
	metrics.RecordForecastIntervals(label, len(out.Forecasts))

	s.logger.Debug(ctx, "forecast normalized",
		logger.String("locale", locale),
		logger.Int("intervals", len(out.Forecasts)),
		logger.Float64("upstream_ms", latencyMs),
	)
	return out, nil
}
