package service

import (
	"github.com/okian/twweather/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAPIKey sets the CWA credential. An empty key is kept so requests fail
// with MissingCredentialError instead of reaching the API.
func WithAPIKey(key string) Option {
	return func(s *Service) {
		s.apiKey = key
	}
}

// WithFetcher sets the upstream client.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
