package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the wizard over HTTP",
		Long: `Serve the wizard as server-rendered pages under / and /test, and as a JSON
API under /api/sessions. The OpenAPI document is served at /openapi.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := a.server()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}

func (a *app) server() (*server.Server, error) {
	opts := []server.Option{
		server.WithAddr(a.cfg.Addr),
		server.WithLogger(a.logger),
		server.WithSessionTTL(a.cfg.SessionTTL),
		server.WithCORSOrigins(a.cfg.CORSOrigins...),
	}

	cat, err := a.catalog()
	if err != nil {
		return nil, err
	}
	opts = append(opts, server.WithCatalog(cat))

	if a.cfg.Theme.Manifest != "" {
		manifest, err := server.LoadManifest(a.cfg.Theme.Manifest)
		if err != nil {
			return nil, err
		}
		selector, err := server.NewManifestSelector(manifest)
		if err != nil {
			return nil, err
		}
		opts = append(opts, server.WithThemeSelector(selector, manifest.Name, a.cfg.Theme.Variant))
	}

	decorators, err := a.decorators()
	if err != nil {
		return nil, err
	}
	opts = append(opts, server.WithDecorators(decorators...))

	return server.New(opts...)
}

