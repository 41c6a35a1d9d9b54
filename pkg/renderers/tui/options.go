package tui

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Theme captures the prefixes the session puts in front of printed lines.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	InfoPrefix:    "",
	ErrorPrefix:   "✗ ",
	SuccessPrefix: "✓ ",
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sends the survey driver's informational lines to w.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithCatalog replaces the embedded catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Session) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger attaches a logger; the controller inherits it.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithControllerOptions forwards options to every controller the session
// creates, e.g. a custom submitter.
func WithControllerOptions(options ...wizard.Option) Option {
	return func(s *Session) {
		s.controllerOptions = append(s.controllerOptions, options...)
	}
}
