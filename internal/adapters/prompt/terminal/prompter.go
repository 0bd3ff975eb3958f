// Package terminal asks for the wallet secret on the terminal with echo
// disabled.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrCancelled = errors.New("secret prompt cancelled")

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type Prompter struct {
	in  io.Reader
	out io.Writer
}

var _ ports.SecretPrompter = (*Prompter)(nil)

// NewPrompter reads from stdin and draws on stderr so stdout stays clean.
func NewPrompter() *Prompter {
	return &Prompter{in: os.Stdin, out: os.Stderr}
}

func NewPrompterWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

func (p *Prompter) PromptSecret(ctx context.Context, req ports.SecretPrompt) (domain.Secret, error) {
	if err := ctx.Err(); err != nil {
		return domain.Secret{}, err
	}

	program := tea.NewProgram(
		newModel(req),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Secret{}, ctxErr
		}
		return domain.Secret{}, fmt.Errorf("run secret prompt: %w", err)
	}

	result, ok := final.(model)
	if !ok {
		return domain.Secret{}, fmt.Errorf("unexpected final prompt model type %T", final)
	}

	return result.secret()
}

type model struct {
	input     textinput.Model
	label     string
	hint      string
	retry     bool
	done      bool
	cancelled bool
}

func newModel(req ports.SecretPrompt) model {
	input := textinput.New()
	input.Placeholder = "password"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.Prompt = "> "
	input.Focus()

	who := req.Username
	if who == "" {
		who = string(req.Account)
	}
	label := "Password"
	if who != "" {
		label = fmt.Sprintf("Password for %s", who)
	}

	return model{
		input: input,
		label: label,
		hint:  strings.TrimSpace(req.Reason),
		retry: req.Retry,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	if m.retry {
		b.WriteString(warnStyle.Render("Previous password was rejected."))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(m.label))
	if m.hint != "" {
		b.WriteString(hintStyle.Render(" (" + m.hint + ")"))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	return b.String()
}

func (m model) secret() (domain.Secret, error) {
	if m.cancelled || !m.done {
		return domain.Secret{}, ErrCancelled
	}

	value := m.input.Value()
	if value == "" {
		return domain.Secret{}, domain.ErrSecretRequired
	}

	return domain.NewSecret(value), nil
}
