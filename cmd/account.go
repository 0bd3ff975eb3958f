package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bnema/pft-wallet-cli/internal/adapters/render/wallet"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show balances and onboarding status of the signed-in account",
	}

	cmd.AddCommand(newAccountSummaryCmd(app), newAccountStatusCmd(app), newAccountRiteCmd(app))

	return cmd
}

type accountView struct {
	summary domain.AccountSummary
	status  domain.AccountStatus
}

func newAccountSummaryCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show XRP and PFT balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := runFetch(cmd, "Fetching account...", asJSON, func(ctx context.Context) (accountView, error) {
				summary, err := app.accounts.Summary(ctx)
				if err != nil {
					return accountView{}, err
				}
				// Status failures degrade to UNSTARTED; balances still print.
				status, err := app.accounts.Status(ctx)
				if err != nil && !domain.IsSilent(err) {
					log.Debug().Err(err).Msg("account status unavailable")
				}
				return accountView{summary: summary, status: status}, nil
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, toSummaryOutput(view.summary))
			}

			rendered, err := wallet.RenderSummary(view.summary, view.status)
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newAccountStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show onboarding status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch {
				return watchAccountStatus(cmd, app, asJSON)
			}

			status, err := runFetch(cmd, "Fetching status...", asJSON, app.accounts.Status)
			if err != nil {
				return err
			}

			return writeStatus(cmd, status, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep polling and print every status until interrupted")

	return cmd
}

func watchAccountStatus(cmd *cobra.Command, app *app, asJSON bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var last *domain.AccountStatus
	var writeErr error
	err := app.accounts.PollStatus(ctx, func(status domain.AccountStatus) {
		if last != nil && *last == status {
			return
		}
		last = &status
		if err := writeStatus(cmd, status, asJSON); err != nil {
			writeErr = err
			stop()
		}
	})
	if err != nil {
		return err
	}

	return writeErr
}

func writeStatus(cmd *cobra.Command, status domain.AccountStatus, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, toStatusOutput(status))
	}

	out := cmd.OutOrStdout()
	lines := []string{
		fmt.Sprintf("init rite:   %s", status.InitRiteStatus),
		fmt.Sprintf("blacklisted: %t", status.IsBlacklisted),
	}
	if status.ContextDocLink != "" {
		lines = append(lines, "context doc: "+sanitizeForTerminal(status.ContextDocLink))
	}
	if status.SweepAddress != "" {
		lines = append(lines, "sweep:       "+sanitizeForTerminal(status.SweepAddress))
	}
	if status.NeedsOnboarding() {
		lines = append(lines, "onboarding incomplete: submit your initiation rite with `pfw account rite --text`")
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}

	return nil
}

func newAccountRiteCmd(app *app) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "rite",
		Short: "Submit the initiation rite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.accounts.SubmitInitiationRite(cmd.Context(), text); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "initiation rite submitted")
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Initiation rite statement")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
