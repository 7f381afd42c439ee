// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/twweather/internal/domain/city"
)

const welcomeMessage = "Taiwan 36-hour weather forecast API"

// RootHandler serves service metadata and the catch-all 404.
type RootHandler struct {
	meta rootResponse
}

type rootResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
	Cities    map[string]string `json:"cities"`
}

// NewRootHandler creates a new root handler. The metadata is built once.
func NewRootHandler() *RootHandler {
	endpoints := map[string]string{
		"health":  pathHealth,
		"metrics": pathMetrics,
		"docs":    pathDocs,
	}
	cities := make(map[string]string)
	for _, k := range city.Keys() {
		endpoints[k.String()] = pathWeather + k.String()
		cities[k.String()] = k.DisplayName()
	}
	return &RootHandler{meta: rootResponse{
		Message:   welcomeMessage,
		Endpoints: endpoints,
		Cities:    cities,
	}}
}

// HandleRoot handles GET / and answers every other unmatched path with 404.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != pathRoot || r.Method != http.MethodGet {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, h.meta)
}
