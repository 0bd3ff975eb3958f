package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/pft-wallet-cli/internal/adapters/render/wallet"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Act on a single task",
	}

	cmd.AddCommand(
		newTaskShowCmd(app),
		newTaskActionCmd(taskAction{
			use:     "accept ID",
			short:   "Accept a proposed task",
			flag:    "message",
			usage:   "Acceptance message",
			done:    "accepted",
			perform: app.accept,
		}),
		newTaskActionCmd(taskAction{
			use:     "refuse ID",
			short:   "Refuse a task",
			flag:    "reason",
			usage:   "Refusal reason",
			done:    "refused",
			perform: app.refuse,
		}),
		newTaskActionCmd(taskAction{
			use:     "verify ID",
			short:   "Submit completion details for an accepted task",
			flag:    "details",
			usage:   "Completion justification",
			done:    "submitted for verification",
			perform: app.verify,
		}),
		newTaskActionCmd(taskAction{
			use:     "final-verify ID",
			short:   "Answer the verification challenge of a task",
			flag:    "details",
			usage:   "Verification response",
			done:    "submitted final verification for",
			perform: app.finalVerify,
		}),
		newTaskRequestCmd(app),
	)

	return cmd
}

type taskAction struct {
	use     string
	short   string
	flag    string
	usage   string
	done    string
	perform func(ctx context.Context, id domain.TaskID, text string) error
}

// The services are wired lazily, so actions resolve them at run time.
func (a *app) accept(ctx context.Context, id domain.TaskID, text string) error {
	return a.actions.Accept(ctx, id, text)
}

func (a *app) refuse(ctx context.Context, id domain.TaskID, text string) error {
	return a.actions.Refuse(ctx, id, text)
}

func (a *app) verify(ctx context.Context, id domain.TaskID, text string) error {
	return a.actions.SubmitVerification(ctx, id, text)
}

func (a *app) finalVerify(ctx context.Context, id domain.TaskID, text string) error {
	return a.actions.SubmitFinalVerification(ctx, id, text)
}

func newTaskActionCmd(action taskAction) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   action.use,
		Short: action.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.TaskID(args[0])
			if err := action.perform(cmd.Context(), id, text); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", action.done, id)
			return err
		},
	}

	cmd.Flags().StringVar(&text, action.flag, "", action.usage)
	_ = cmd.MarkFlagRequired(action.flag)

	return cmd
}

func newTaskRequestCmd(app *app) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Ask the node for a new task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := app.actions.RequestTask(cmd.Context(), text)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "requested task %s\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "What you would like to work on")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newTaskShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a task with its message history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.actions.Task(cmd.Context(), domain.TaskID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, toTaskOutput(task, true))
			}

			rendered, err := wallet.RenderTask(task, wallet.Options{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render task: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
