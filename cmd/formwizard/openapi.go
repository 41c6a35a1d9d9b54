package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/server"
	"github.com/goliatone/go-formwizard/pkg/catalog"
)

func newOpenAPICmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			if cat == nil {
				if cat, err = catalog.Default(); err != nil {
					return err
				}
			}
			doc := server.OpenAPI(cat)
			if err := doc.Validate(cmd.Context()); err != nil {
				return fmt.Errorf("openapi: %w", err)
			}
			raw, err := doc.MarshalJSON()
			if err != nil {
				return err
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "  "); err != nil {
				return err
			}
			pretty.WriteByte('\n')

			if output != "" {
				if err := os.WriteFile(output, pretty.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OpenAPI document written to %s\n", output)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(pretty.Bytes())
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
