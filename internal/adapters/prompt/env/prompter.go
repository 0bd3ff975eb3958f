// Package env supplies the wallet secret from PFW_PASSWORD for
// non-interactive use.
package env

import (
	"context"
	"errors"
	"os"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
)

const Variable = "PFW_PASSWORD"

var (
	ErrUnset    = errors.New(Variable + " is not set")
	ErrRejected = errors.New(Variable + " was rejected")
)

type Prompter struct {
	lookup func(string) (string, bool)
}

var _ ports.SecretPrompter = (*Prompter)(nil)

func NewPrompter() *Prompter {
	return &Prompter{lookup: os.LookupEnv}
}

func (p *Prompter) PromptSecret(ctx context.Context, req ports.SecretPrompt) (domain.Secret, error) {
	if err := ctx.Err(); err != nil {
		return domain.Secret{}, err
	}
	if req.Retry {
		return domain.Secret{}, ErrRejected
	}

	value, ok := p.lookup(Variable)
	if !ok || value == "" {
		return domain.Secret{}, ErrUnset
	}

	return domain.NewSecret(value), nil
}
