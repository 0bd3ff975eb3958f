package ports

import (
	"context"

	"github.com/bnema/pft-wallet-cli/internal/domain"
)

// SecretPrompter asks the user for the signing secret. reason describes the
// action waiting on it; account and username identify whose secret is
// requested.
type SecretPrompter interface {
	PromptSecret(ctx context.Context, req SecretPrompt) (domain.Secret, error)
}

type SecretPrompt struct {
	Account  domain.Address
	Username string
	Reason   string
	// Retry is set when a previous secret was rejected by the backend.
	Retry bool
}
