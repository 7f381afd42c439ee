package forecast

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for forecast errors. Typed errors below unwrap to these.
var (
	ErrMissingCredential = errors.New("missing CWA API key")
	ErrUpstream          = errors.New("upstream API error")
	ErrNotFound          = errors.New("location not found")
	ErrMalformed         = errors.New("malformed upstream data")
)

// MissingCredentialError is returned before any network call when no API key
// is configured.
type MissingCredentialError struct{}

func (e *MissingCredentialError) Error() string {
	return "CWA API key is not configured"
}

func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }

// UpstreamError carries a failed upstream response. Body is the decoded JSON
// payload when it parses, otherwise the raw text; it is never reinterpreted.
type UpstreamError struct {
	Status  int
	Message string
	Body    any
	Err     error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream status %d: %s: %v", e.Status, msg, e.Err)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, msg)
}

// Is matches ErrUpstream while Unwrap exposes the transport cause.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func (e *UpstreamError) Unwrap() error { return e.Err }

// NotFoundError reports that the dataset has no record for Locale.
type NotFoundError struct {
	Locale string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no forecast data for %s", e.Locale)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// MalformedUpstreamDataError reports an element whose time series does not
// line up with the first element's.
type MalformedUpstreamDataError struct {
	Locale  string
	Element string
	Want    int
	Got     int
}

func (e *MalformedUpstreamDataError) Error() string {
	return fmt.Sprintf("malformed data for %s: element %s has %d intervals, want %d",
		e.Locale, e.Element, e.Got, e.Want)
}

func (e *MalformedUpstreamDataError) Unwrap() error { return ErrMalformed }
