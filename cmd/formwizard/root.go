package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/catalog"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	envFiles   []string
	presetPath string

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "formwizard",
		Short: "Multi-step registration wizard",
		Long: `formwizard serves the DINOSPACE registration wizard.

Configuration comes from built-in defaults, an optional YAML file (--config),
.env files and FORMWIZARD_* environment variables, in that order.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "env files to load (default .env)")
	root.PersistentFlags().StringVar(&a.presetPath, "preset", "", "JSON document overriding titles, labels and help text")

	root.AddCommand(newServeCmd(a), newTUICmd(a), newOpenAPICmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, a.envFiles...)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.With().Str("command", cmd.Name()).Logger()
	return nil
}

// catalog returns the configured catalog, or nil to use the embedded one.
func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cfg.Catalog == "" {
		return nil, nil
	}
	cat, err := catalog.LoadFile(a.cfg.Catalog)
	if err != nil {
		return nil, err
	}
	a.logger.Info().Str("path", a.cfg.Catalog).Msg("catalog loaded")
	return cat, nil
}

func (a *app) decorators() ([]orchestrator.Decorator, error) {
	if a.presetPath == "" {
		return nil, nil
	}
	dir, file := filepath.Split(a.presetPath)
	if dir == "" {
		dir = "."
	}
	preset, err := orchestrator.NewJSONPresetDecoratorFromFS(os.DirFS(dir), file)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return []orchestrator.Decorator{preset}, nil
}
