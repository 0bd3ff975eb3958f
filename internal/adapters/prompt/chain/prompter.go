// Package chain tries a primary secret source and falls back to a second one.
package chain

import (
	"context"
	"errors"
	"fmt"

	envprompt "github.com/bnema/pft-wallet-cli/internal/adapters/prompt/env"
	passprompt "github.com/bnema/pft-wallet-cli/internal/adapters/prompt/pass"
	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
)

type Prompter struct {
	primary  ports.SecretPrompter
	fallback ports.SecretPrompter
}

var _ ports.SecretPrompter = (*Prompter)(nil)

var (
	errNilPrimaryPrompter  = errors.New("primary secret prompter is nil")
	errNilFallbackPrompter = errors.New("fallback secret prompter is nil")
)

func NewPrompter(primary ports.SecretPrompter, fallback ports.SecretPrompter) *Prompter {
	prompter, err := NewPrompterChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return prompter
}

func NewPrompterChecked(primary ports.SecretPrompter, fallback ports.SecretPrompter) (*Prompter, error) {
	if primary == nil {
		return nil, errNilPrimaryPrompter
	}
	if fallback == nil {
		return nil, errNilFallbackPrompter
	}

	return &Prompter{primary: primary, fallback: fallback}, nil
}

// NewDefault consults PFW_PASSWORD, then pass, then interactive.
func NewDefault(interactive ports.SecretPrompter) (*Prompter, error) {
	stored, err := NewPrompterChecked(passprompt.NewPrompter(), interactive)
	if err != nil {
		return nil, err
	}

	return NewPrompterChecked(envprompt.NewPrompter(), stored)
}

func (p *Prompter) PromptSecret(ctx context.Context, req ports.SecretPrompt) (domain.Secret, error) {
	secret, err := p.primary.PromptSecret(ctx, req)
	if err == nil && !secret.IsZero() {
		return secret, nil
	}
	if err == nil {
		err = domain.ErrSecretRequired
	}
	if shouldSkipFallback(err) {
		return domain.Secret{}, err
	}

	fallbackSecret, fallbackErr := p.fallback.PromptSecret(ctx, req)
	if fallbackErr == nil && !fallbackSecret.IsZero() {
		return fallbackSecret, nil
	}
	if fallbackErr == nil {
		fallbackErr = domain.ErrSecretRequired
	}

	return domain.Secret{}, fmt.Errorf("primary prompter failed: %w; fallback prompter failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
