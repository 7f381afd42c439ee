// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/twweather/internal/domain/city"
	"github.com/okian/twweather/internal/domain/forecast"
	"github.com/okian/twweather/pkg/logger"
	"github.com/okian/twweather/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route paths.
const (
	pathRoot    = "/"
	pathHealth  = "/api/health"
	pathWeather = "/api/weather/"
	pathMetrics = "/metrics"
	pathDocs    = "/api-docs"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Forecast returns the normalized forecast for a supported city.
	Forecast(ctx context.Context, key city.Key) (forecast.Forecast, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler    *RootHandler
	healthHandler  *HealthHandler
	weatherHandler *WeatherHandler

	logger     logger.Logger
	corsOrigin string
	rateRPS    float64
	rateBurst  int
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used by handlers and middleware.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCORSOrigin sets Access-Control-Allow-Origin; empty disables CORS headers.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithRateLimit caps inbound requests per second; rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.rateRPS = rps
		s.rateBurst = burst
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		logger:     logger.Nop(),
		corsOrigin: "*",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rootHandler = NewRootHandler()
	s.healthHandler = NewHealthHandler()
	s.weatherHandler = NewWeatherHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc(pathRoot, MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
	mux.HandleFunc(pathHealth, MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc(pathWeather, MetricsMiddleware(s.weatherHandler.HandleWeather, "weather"))
	mux.Handle(pathMetrics, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// Handler wraps next with the server-wide middleware chain.
func (s *Server) Handler(next http.Handler) http.Handler {
	h := RateLimitMiddleware(next, s.rateRPS, s.rateBurst)
	h = CORSMiddleware(h, s.corsOrigin)
	return RequestIDMiddleware(h)
}

// Weather exposes the per-city handler factory.
func (s *Server) Weather() *WeatherHandler { return s.weatherHandler }

// successResponse is the envelope for a successful forecast.
type successResponse struct {
	Success bool              `json:"success"`
	Data    forecast.Forecast `json:"data"`
}

// errorResponse is the envelope for every failure.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "path not found"})
}
