package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type fetchResultMsg[T any] struct {
	value T
	err   error
}

// fetchSpinnerModel spins until its fetch resolves, then clears its line.
type fetchSpinnerModel[T any] struct {
	spinner spinner.Model
	label   string
	fetch   tea.Cmd
	result  fetchResultMsg[T]
	done    bool
}

func newFetchSpinnerModel[T any](label string, fetch tea.Cmd) fetchSpinnerModel[T] {
	return fetchSpinnerModel[T]{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		label: label,
		fetch: fetch,
	}
}

func (m fetchSpinnerModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m fetchSpinnerModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchResultMsg[T]:
		m.result = msg
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m fetchSpinnerModel[T]) View() string {
	if m.done {
		return ""
	}

	return m.spinner.View() + " " + m.label
}

func spinWhile[T any](ctx context.Context, output io.Writer, label string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	program := tea.NewProgram(
		newFetchSpinnerModel[T](label, func() tea.Msg {
			value, err := fetch(ctx)
			return fetchResultMsg[T]{value: value, err: err}
		}),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return zero, err
	}

	model, ok := final.(fetchSpinnerModel[T])
	if !ok {
		return zero, fmt.Errorf("unexpected final spinner model type %T", final)
	}

	return model.result.value, model.result.err
}

// runFetch draws a spinner on stderr while fetch runs. JSON output skips it
// so machine output stays clean.
func runFetch[T any](cmd *cobra.Command, label string, asJSON bool, fetch func(context.Context) (T, error)) (T, error) {
	if asJSON {
		return fetch(cmd.Context())
	}

	return spinWhile(cmd.Context(), cmd.ErrOrStderr(), label, fetch)
}
