package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptSecretUsesPassShowFirstLine(t *testing.T) {
	t.Parallel()

	called := false
	prompter := &Prompter{
		run: func(ctx context.Context, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"show", "pfw/alice"}, args)
			return "top-secret\nurl: https://node.example\n", "", nil
		},
	}

	secret, err := prompter.PromptSecret(context.Background(), ports.SecretPrompt{Account: "rA", Username: "alice"})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "top-secret", secret.Reveal())
}

func TestPromptSecretFallsBackToAccountKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pfw/rA", Key(ports.SecretPrompt{Account: "rA"}))
	assert.Equal(t, "pfw/alice", Key(ports.SecretPrompt{Account: "rA", Username: " alice "}))
}

func TestPromptSecretRefusesRetry(t *testing.T) {
	t.Parallel()

	prompter := &Prompter{
		run: func(context.Context, ...string) (string, string, error) {
			t.Fatal("pass must not be consulted on retry")
			return "", "", nil
		},
	}

	_, err := prompter.PromptSecret(context.Background(), ports.SecretPrompt{Username: "alice", Retry: true})
	require.ErrorIs(t, err, ErrRejected)
}

func TestPromptSecretReturnsClearError(t *testing.T) {
	t.Parallel()

	prompter := &Prompter{
		run: func(context.Context, ...string) (string, string, error) {
			return "", "Error: pfw/alice is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := prompter.PromptSecret(context.Background(), ports.SecretPrompt{Username: "alice"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass show")
	assert.ErrorContains(t, err, "pfw/alice")
	assert.ErrorContains(t, err, "not in the password store")
}

func TestPromptSecretRejectsEmptyEntry(t *testing.T) {
	t.Parallel()

	prompter := &Prompter{
		run: func(context.Context, ...string) (string, string, error) {
			return "\n", "", nil
		},
	}

	_, err := prompter.PromptSecret(context.Background(), ports.SecretPrompt{Username: "alice"})
	assert.ErrorContains(t, err, "empty entry")
}
