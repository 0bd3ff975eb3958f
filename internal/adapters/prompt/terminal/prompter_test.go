package terminal

import (
	"testing"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeInto(m model, text string) model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	return m
}

func TestModelCollectsSecretOnEnter(t *testing.T) {
	t.Parallel()

	m := typeInto(newModel(ports.SecretPrompt{Username: "alice", Reason: "accept task"}), "hunter2")
	assert.NotContains(t, m.View(), "hunter2", "input is masked")
	assert.Contains(t, m.View(), "Password for alice")
	assert.Contains(t, m.View(), "accept task")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = next.(model)

	secret, err := m.secret()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", secret.Reveal())
	assert.Empty(t, m.View())
}

func TestModelCancel(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := typeInto(newModel(ports.SecretPrompt{Account: "rA"}), "abc")
		next, _ := m.Update(tea.KeyMsg{Type: key})

		_, err := next.(model).secret()
		assert.ErrorIs(t, err, ErrCancelled)
	}
}

func TestModelEmptySecret(t *testing.T) {
	t.Parallel()

	next, _ := newModel(ports.SecretPrompt{}).Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, err := next.(model).secret()
	assert.ErrorIs(t, err, domain.ErrSecretRequired)
}

func TestModelRetryShowsWarning(t *testing.T) {
	t.Parallel()

	m := newModel(ports.SecretPrompt{Account: "rA", Retry: true})
	assert.Contains(t, m.View(), "Previous password was rejected.")
	assert.Contains(t, m.View(), "Password for rA")
}
