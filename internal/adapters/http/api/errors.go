package api

import (
	"errors"
	"net/http"

	"github.com/okian/twweather/internal/domain/city"
	"github.com/okian/twweather/internal/domain/forecast"
)

// Sentinel kinds for API errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Error body labels and fallbacks.
const (
	errUpstream       = "upstream API error"
	errServer         = "server error"
	fallbackUpstream  = "failed to fetch weather data"
	fallbackServer    = "internal server error"
	minHTTPStatus     = 100
	maxHTTPStatus     = 999
	kindUpstream      = "upstream"
	kindNotFound      = "not_found"
	kindMalformed     = "malformed"
	kindCredential    = "missing_credential"
	kindConfiguration = "configuration"
	kindInternal      = "internal"
)

// mappedError is the response for a failure plus its metrics label.
type mappedError struct {
	status int
	body   errorResponse
	kind   string
}

// mapError turns any failure into exactly one response.
//
// NotFoundError stays a 500; whether it should be a 404 is undecided.
func mapError(err error) mappedError {
	var ue *forecast.UpstreamError
	if errors.As(err, &ue) {
		status := ue.Status
		if status < minHTTPStatus || status > maxHTTPStatus {
			status = http.StatusBadGateway
		}
		msg := ue.Message
		if msg == "" {
			msg = fallbackUpstream
		}
		return mappedError{
			status: status,
			body:   errorResponse{Error: errUpstream, Message: msg, Details: ue.Body},
			kind:   kindUpstream,
		}
	}

	kind := kindInternal
	switch {
	case errors.Is(err, forecast.ErrNotFound):
		kind = kindNotFound
	case errors.Is(err, forecast.ErrMalformed):
		kind = kindMalformed
	case errors.Is(err, forecast.ErrMissingCredential):
		kind = kindCredential
	case errors.Is(err, city.ErrUnknownCity):
		kind = kindConfiguration
	}

	msg := fallbackServer
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return mappedError{
		status: http.StatusInternalServerError,
		body:   errorResponse{Error: errServer, Message: msg},
		kind:   kind,
	}
}
