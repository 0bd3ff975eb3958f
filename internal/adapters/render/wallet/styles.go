package wallet

import (
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	taskID   lipgloss.Style
	detail   lipgloss.Style
	warning  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	key      lipgloss.Style
	meta     lipgloss.Style
	pending  lipgloss.Style
	reward   lipgloss.Style
	inbound  lipgloss.Style
	outbound lipgloss.Style
	status   map[domain.TaskStatus]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		taskID:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		key:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		pending:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("214")),
		reward:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		inbound:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		outbound: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		status: map[domain.TaskStatus]lipgloss.Style{
			domain.TaskRequested:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			domain.TaskProposed:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
			domain.TaskAccepted:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			domain.TaskChallenged: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			domain.TaskRefused:    lipgloss.NewStyle().Faint(true),
			domain.TaskRewarded:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		},
	}
}

func (s styles) statusBadge(status domain.TaskStatus) string {
	style, ok := s.status[status]
	if !ok {
		style = s.meta
	}

	return style.Render("[" + string(status) + "]")
}
