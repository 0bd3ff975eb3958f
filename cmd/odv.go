package cmd

import (
	"fmt"

	"github.com/bnema/pft-wallet-cli/internal/adapters/render/wallet"
	"github.com/spf13/cobra"
)

func newODVCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "odv",
		Short: "Exchange encrypted messages with the node",
	}

	cmd.AddCommand(newODVSendCmd(app), newODVLogCmd(app), newODVHistoryCmd(app))

	return cmd
}

func newODVSendCmd(app *app) *cobra.Command {
	var message string
	var amount float64

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message to the node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.accounts.SendNodeMessage(cmd.Context(), message, amount); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "message sent")
			return err
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Message text")
	cmd.Flags().Float64Var(&amount, "amount", 0, "PFT attached to the message")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func newODVLogCmd(app *app) *cobra.Command {
	var content string
	var amount float64

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Send a work log to the node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.accounts.SendNodeLog(cmd.Context(), content, amount); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "log sent")
			return err
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Log content")
	cmd.Flags().Float64Var(&amount, "amount", 0, "PFT attached to the log")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func newODVHistoryCmd(app *app) *cobra.Command {
	var asJSON bool
	var width int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the decrypted message history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The history needs the secret, which may prompt; no spinner here.
			messages, err := app.accounts.NodeMessages(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, toNodeMessageOutputs(messages))
			}

			rendered, err := wallet.RenderNodeMessages(messages, wallet.Options{Now: app.now(), MessageWidth: width})
			if err != nil {
				return fmt.Errorf("render node messages: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().IntVar(&width, "width", 0, "Truncate messages to this many characters")

	return cmd
}
