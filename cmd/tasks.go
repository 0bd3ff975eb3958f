package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/pft-wallet-cli/internal/adapters/render/wallet"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and follow the tasks of the signed-in account",
	}

	cmd.AddCommand(newTasksListCmd(app), newTasksRewardsCmd(app), newTasksWatchCmd(app))

	return cmd
}

func newTasksListCmd(app *app) *cobra.Command {
	var asJSON bool
	var showRefused bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := loadTasks(cmd, app, asJSON)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, toTaskOutputs(snapshot.Visible(showRefused)))
			}

			rendered, err := wallet.RenderTasks(snapshot, wallet.Options{Now: app.now(), ShowRefused: showRefused})
			if err != nil {
				return fmt.Errorf("render tasks: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&showRefused, "show-refused", false, "Include refused tasks")

	return cmd
}

func newTasksRewardsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "List rewarded tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := loadTasks(cmd, app, asJSON)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, toTaskOutputs(snapshot.Rewarded()))
			}

			rendered, err := wallet.RenderRewards(snapshot, wallet.Options{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render rewards: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

// loadTasks fetches once. Groups with an unknown status are logged and
// skipped rather than failing the listing.
func loadTasks(cmd *cobra.Command, app *app, asJSON bool) (domain.TaskSnapshot, error) {
	snapshot, err := runFetch(cmd, "Fetching tasks...", asJSON, app.actions.Tasks)
	if errors.Is(err, domain.ErrUnknownTaskStatus) {
		log.Warn().Err(err).Msg("some task groups were skipped")
		err = nil
	}

	return snapshot, err
}
