package wallet

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// layoutMsg asks the model to lay out its view once styles are resolved.
type layoutMsg struct{}

// snapshotModel lays out one view and quits; the program exists only to
// resolve styles the same way the live views do.
type snapshotModel struct {
	layout func(styles) string
	styles styles
	frame  string
	ready  bool
}

func (m snapshotModel) Init() tea.Cmd {
	return func() tea.Msg { return layoutMsg{} }
}

func (m snapshotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(layoutMsg); !ok || m.ready {
		return m, nil
	}

	m.frame = m.layout(m.styles)
	m.ready = true
	return m, tea.Quit
}

func (m snapshotModel) View() string {
	return m.frame
}

func render(layout func(styles) string) (string, error) {
	program := tea.NewProgram(
		snapshotModel{layout: layout, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)

	final, err := program.Run()
	if err != nil {
		return "", err
	}

	done, ok := final.(snapshotModel)
	if !ok || !done.ready {
		return "", ErrUnexpectedRenderModel
	}

	return done.frame, nil
}
