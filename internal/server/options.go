package server

import (
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithCatalog replaces the embedded catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Server) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

// WithLogger attaches a logger to the server and every session controller.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSessionTTL sets how long an idle session is kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSubmitter overrides where completed records go. Defaults to the
// controller's LogSubmitter.
func WithSubmitter(submitter wizard.Submitter) Option {
	return func(s *Server) {
		s.submitter = submitter
	}
}

// WithTheme passes resolved theme config to the HTML renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.orchOptions = append(s.orchOptions, orchestrator.WithTheme(cfg))
	}
}

// WithThemeSelector resolves name/variant through selector when the server is
// built.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(s *Server) {
		s.orchOptions = append(s.orchOptions, orchestrator.WithThemeSelector(selector, name, variant))
	}
}

// WithDecorators adjusts every view before it is rendered.
func WithDecorators(decorators ...orchestrator.Decorator) Option {
	return func(s *Server) {
		s.orchOptions = append(s.orchOptions, orchestrator.WithDecorators(decorators...))
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCORSOrigins enables CORS for the listed origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.corsOrigins = append(s.corsOrigins, origins...)
	}
}
