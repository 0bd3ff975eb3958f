package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/pft-wallet-cli/internal/application"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign out and create wallet accounts",
	}

	cmd.AddCommand(newAuthSignInCmd(app), newAuthSignOutCmd(app), newAuthCreateCmd(app))

	return cmd
}

func newAuthSignInCmd(app *app) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and remember the account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username = strings.TrimSpace(username)
			secret, err := app.prompter.PromptSecret(cmd.Context(), ports.SecretPrompt{Username: username, Reason: "sign in"})
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			session, err := app.sessions.SignIn(cmd.Context(), username, secret)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", session.Username, session.Address)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Wallet username")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newAuthSignOutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Stop server-side refresh, clear state and forget the account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessions.Restore(cmd.Context())
			if err != nil {
				return err
			}
			if !session.Authenticated {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return err
			}

			if err := app.sessions.ClearAuth(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signed out of %s\n", session.Address)
			return err
		},
	}
}

func newAuthCreateCmd(app *app) *cobra.Command {
	var username string
	var generate bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a wallet account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username = strings.TrimSpace(username)
			secret, err := app.prompter.PromptSecret(cmd.Context(), ports.SecretPrompt{Username: username, Reason: "create account"})
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			result, err := app.sessions.CreateAccount(cmd.Context(), application.CreateAccountInput{
				Username: username,
				Secret:   secret,
				Generate: generate,
			})
			if result.Keypair != nil {
				if printErr := printKeypair(cmd, *result.Keypair); printErr != nil {
					return errors.Join(err, printErr)
				}
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", result.Session.Username, result.Session.Address)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Wallet username")
	cmd.Flags().BoolVar(&generate, "generate", false, "Generate a fresh keypair for the account")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// printKeypair shows a generated keypair once. The private key is never
// persisted by pfw.
func printKeypair(cmd *cobra.Command, keypair domain.Keypair) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "address:     %s\nprivate key: %s\n", keypair.Address, keypair.PrivateKey.Reveal()); err != nil {
		return err
	}

	_, err := fmt.Fprintln(cmd.ErrOrStderr(), "store the private key now; it will not be shown again")
	return err
}
