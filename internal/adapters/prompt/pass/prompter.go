// Package pass reads the wallet secret from the pass password manager.
// Entries are looked up read-only under pfw/<username>.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
)

const keyPrefix = "pfw/"

var (
	ErrUnavailable = errors.New("pass command unavailable")
	// ErrRejected is returned on retry: the stored entry was already refused
	// by the backend and re-reading it would loop.
	ErrRejected = errors.New("stored pass entry was rejected")
)

type runFunc func(ctx context.Context, args ...string) (stdout string, stderr string, err error)

type Prompter struct {
	run runFunc
}

var _ ports.SecretPrompter = (*Prompter)(nil)

func NewPrompter() *Prompter {
	return &Prompter{run: runPassCommand}
}

// Key is the pass entry consulted for req.
func Key(req ports.SecretPrompt) string {
	name := strings.TrimSpace(req.Username)
	if name == "" {
		name = string(req.Account)
	}

	return keyPrefix + name
}

func (p *Prompter) PromptSecret(ctx context.Context, req ports.SecretPrompt) (domain.Secret, error) {
	if err := ctx.Err(); err != nil {
		return domain.Secret{}, err
	}
	if req.Retry {
		return domain.Secret{}, ErrRejected
	}

	key := Key(req)
	if key == keyPrefix {
		return domain.Secret{}, errors.New("pass lookup needs a username or account")
	}

	stdout, stderr, err := p.run(ctx, "show", key)
	if err != nil {
		return domain.Secret{}, formatError(key, err, stderr)
	}

	// pass entries keep the password on the first line.
	first, _, _ := strings.Cut(stdout, "\n")
	first = strings.TrimSuffix(first, "\r")
	if first == "" {
		return domain.Secret{}, fmt.Errorf("pass show %q: empty entry", key)
	}

	return domain.NewSecret(first), nil
}

func runPassCommand(ctx context.Context, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(key string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass show %q: %w", key, err)
	}

	return fmt.Errorf("pass show %q: %w: %s", key, err, stderr)
}
