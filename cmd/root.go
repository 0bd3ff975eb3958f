package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/pft-wallet-cli/internal/adapters/prompt/terminal"
	"github.com/bnema/pft-wallet-cli/internal/config"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// skipWire marks commands that run without config or backend wiring.
const skipWire = "pfw/skip-wire"

type cli struct {
	root *cobra.Command
	app  *app
}

func Execute() error {
	c := newCLI(terminal.NewPrompter())
	err := c.execute(context.Background())
	if err != nil {
		reportError(c.root.ErrOrStderr(), err)
	}

	return err
}

func newCLI(interactive ports.SecretPrompter) *cli {
	cfg := viper.New()
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "pfw",
		Short:         "Post Fiat wallet client: tasks, payments and node messages",
		Long:          "pfw (Post Fiat wallet) signs in to a wallet backend, follows the task lifecycle of your account, and sends payments and node messages from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWire] != "" {
				return nil
			}
			return a.wire(cfg, interactive, cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "Enable debug logging on stderr")
	flags.String("api-url", "", "Wallet backend base URL (default "+config.DefaultAPIBaseURL+")")
	_ = cfg.BindPFlag(config.KeyDebug, flags.Lookup("debug"))
	_ = cfg.BindPFlag(config.KeyAPIBaseURL, flags.Lookup("api-url"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newHealthCmd(a),
		newAuthCmd(a),
		newWalletCmd(a),
		newAccountCmd(a),
		newTasksCmd(a),
		newTaskCmd(a),
		newPayCmd(a),
		newODVCmd(a),
	)

	return &cli{root: rootCmd, app: a}
}

// execute runs the command tree and always releases background loops, even
// when the command failed.
func (c *cli) execute(ctx context.Context) error {
	defer c.app.close(context.WithoutCancel(ctx))
	return c.root.ExecuteContext(ctx)
}

func reportError(w io.Writer, err error) {
	switch {
	case domain.IsSilent(err):
		return
	case errors.Is(err, domain.ErrNetworkUnreachable):
		_, _ = fmt.Fprintln(w, "Error: server unavailable")
	case errors.Is(err, domain.ErrNotAuthenticated):
		_, _ = fmt.Fprintln(w, "Error: not signed in (run `pfw auth signin`)")
	default:
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	}
}
