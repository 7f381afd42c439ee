// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/okian/twweather/internal/domain/city"
	"github.com/okian/twweather/pkg/logger"
	"github.com/okian/twweather/pkg/metrics"
)

// WeatherHandler serves forecasts for the supported cities.
type WeatherHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(deps Dependencies, l logger.Logger) *WeatherHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &WeatherHandler{deps: deps, logger: l.Named("weather")}
}

// HandleWeather handles GET /api/weather/{city} requests. Anything other than
// a supported city key is an unmatched path.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeNotFound(w)
		return
	}
	key, ok := city.Parse(strings.TrimPrefix(r.URL.Path, pathWeather))
	if !ok {
		writeNotFound(w)
		return
	}
	h.serve(w, r, key)
}

// For returns a handler bound to key. It performs no I/O until invoked.
func (h *WeatherHandler) For(key city.Key) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, key)
	}
}

func (h *WeatherHandler) serve(w http.ResponseWriter, r *http.Request, key city.Key) {
	ctx := r.Context()
	out, err := h.deps.Forecast(ctx, key)
	if err != nil {
		mapped := mapError(err)
		metrics.RecordErrorByKind(mapped.kind)
		h.logger.Error(ctx, "weather request failed",
			logger.String("city", key.String()),
			logger.String("request_id", RequestIDFromContext(ctx)),
			logger.String("kind", mapped.kind),
			logger.String("message", mapped.body.Message),
			logger.Error(err),
		)
		writeJSON(w, mapped.status, mapped.body)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: out})
}
