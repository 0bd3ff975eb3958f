package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/pft-wallet-cli/internal/adapters/render/wallet"
	"github.com/bnema/pft-wallet-cli/internal/application"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPayCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Send and list XRP and PFT payments",
	}

	cmd.AddCommand(newPaySendCmd(app), newPayListCmd(app))

	return cmd
}

func newPaySendCmd(app *app) *cobra.Command {
	var in application.PaymentInput
	var to string
	var currency string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a payment from the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := domain.ParseCurrency(currency)
			if err != nil {
				return err
			}
			in.Currency = parsed
			in.To = domain.Address(strings.TrimSpace(to))

			if err := app.accounts.SendPayment(cmd.Context(), in); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent %s %s to %s\n", formatAmount(in.Amount), in.Currency, in.To)
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Destination address")
	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "Amount to send")
	cmd.Flags().StringVar(&currency, "currency", string(domain.CurrencyPFT), "Currency (XRP|PFT)")
	cmd.Flags().StringVar(&in.Memo, "memo", "", "Optional memo")
	cmd.Flags().StringVar(&in.MemoID, "memo-id", "", "Optional memo id")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newPayListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent payments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			payments, err := runFetch(cmd, "Fetching payments...", asJSON, app.accounts.Payments)
			if err != nil {
				return err
			}

			owner := app.sessions.Current().Address
			if asJSON {
				return writeJSON(cmd, toPaymentOutputs(owner, payments))
			}

			rendered, err := wallet.RenderPayments(owner, payments, wallet.Options{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render payments: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func formatAmount(amount float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", amount), "0"), ".")
}
