package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/pft-wallet-cli/internal/adapters/connection"
	"github.com/spf13/cobra"
)

type healthOutput struct {
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
	Healthy   bool   `json:"healthy"`
	Error     string `json:"error,omitempty"`
}

func newHealthCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the wallet backend is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := runFetch(cmd, "Checking backend...", asJSON, func(ctx context.Context) (healthOutput, error) {
				out := healthOutput{URL: app.settings.APIBaseURL}
				prober := connection.HTTPProber{BaseURL: app.settings.APIBaseURL, HTTPClient: app.httpClient}
				out.Reachable = prober.Probe(ctx, false) == nil
				if err := app.accounts.Health(ctx); err != nil {
					out.Error = err.Error()
					return out, nil
				}
				out.Healthy = true
				return out, nil
			})
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(cmd, out); err != nil {
					return err
				}
			} else if err := writeHealth(cmd, out); err != nil {
				return err
			}

			if !out.Healthy {
				return fmt.Errorf("backend at %s is not healthy", out.URL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func writeHealth(cmd *cobra.Command, out healthOutput) error {
	state := "ok"
	switch {
	case !out.Reachable:
		state = "unreachable"
	case !out.Healthy:
		state = "degraded"
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.URL, state)
	return err
}
