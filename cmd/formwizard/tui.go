package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the wizard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			opts := []tui.Option{
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithLogger(a.logger),
			}
			if cat != nil {
				opts = append(opts, tui.WithCatalog(cat))
			}
			session, err := tui.New(opts...)
			if err != nil {
				return err
			}
			if _, err := session.Run(cmd.Context()); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					return nil
				}
				return err
			}
			return nil
		},
	}
}
