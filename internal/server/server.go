package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	// DefaultAddr is used when no listen address is configured.
	DefaultAddr = ":8080"
	// DefaultSessionTTL bounds how long an idle session survives.
	DefaultSessionTTL = 30 * time.Minute
	// SessionCookie carries the wizard session id for browser clients.
	SessionCookie = "formwizard_session"
	// StylesheetPath serves the embedded stylesheet.
	StylesheetPath = "/assets/" + html.StylesheetName

	shutdownTimeout = 5 * time.Second
	minSweep        = time.Second
)

// Server exposes the wizard over HTTP: server-rendered pages for browsers
// and a JSON API for scripted clients.
type Server struct {
	addr        string
	catalog     *catalog.Catalog
	logger      zerolog.Logger
	ttl         time.Duration
	submitter   wizard.Submitter
	orchOptions []orchestrator.Option
	corsOrigins []string
	newID       func() string
	now         func() time.Time

	orch  *orchestrator.Orchestrator
	store *Store
	hertz *server.Hertz
}

// New builds a server and registers its routes. Nothing listens until Run.
func New(options ...Option) (*Server, error) {
	s := &Server{
		addr:   DefaultAddr,
		logger: zerolog.Nop(),
		ttl:    DefaultSessionTTL,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	orchOptions := append([]orchestrator.Option{
		orchestrator.WithCatalog(s.catalog),
		orchestrator.WithHTMLOptions(html.WithStylesheetURL(StylesheetPath)),
	}, s.orchOptions...)
	s.orch = orchestrator.New(orchOptions...)
	if err := s.orch.Err(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.catalog = s.orch.Catalog()

	s.store = newStore(s.ttl, s.now, s.newID, s.newController)

	s.hertz = server.New(server.WithHostPorts(s.addr))
	s.routes()
	return s, nil
}

func (s *Server) newController(sess *session) *wizard.Controller {
	logger := s.logger.With().Str("session", sess.id).Logger()
	opts := []wizard.Option{
		wizard.WithMessages(s.catalog.MessageSet()),
		wizard.WithLogger(logger),
		wizard.WithRouter(wizard.RouterFunc(func(path string) {
			sess.navigate = path
		})),
	}
	if s.submitter != nil {
		opts = append(opts, wizard.WithSubmitter(s.submitter))
	}
	return wizard.New(opts...)
}

// Engine exposes the route engine, mainly for tests.
func (s *Server) Engine() *route.Engine {
	return s.hertz.Engine
}

// Sessions returns the session store.
func (s *Server) Sessions() *Store {
	return s.store
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()

	interval := s.ttl / 2
	if interval < minSweep {
		interval = minSweep
	}
	go s.store.sweepEvery(sweepCtx, interval, func(n int) {
		s.logger.Debug().Int("expired", n).Msg("sessions swept")
	})

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("formwizard listening")
		errCh <- s.hertz.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("formwizard shutting down")
		if err := s.hertz.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}
