package cmd

import (
	"github.com/spf13/cobra"
)

type keypairOutput struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
}

func newWalletCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet keypair helpers",
	}

	cmd.AddCommand(newWalletGenerateCmd(app))

	return cmd
}

func newWalletGenerateCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh keypair without creating an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			keypair, err := app.sessions.GenerateWallet(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, keypairOutput{Address: keypair.Address.String(), PrivateKey: keypair.PrivateKey.Reveal()})
			}
			return printKeypair(cmd, keypair)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
