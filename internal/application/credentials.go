package application

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"
)

type fingerprint [blake2b.Size256]byte

// CredentialHolder caches the signing secret in memory and funnels
// concurrent requests for it into a single prompt.
type CredentialHolder struct {
	prompter ports.SecretPrompter
	gate     ports.AuthGate
	key      []byte
	group    singleflight.Group

	mu       sync.Mutex
	secret   domain.Secret
	rejected map[fingerprint]struct{}
}

func NewCredentialHolder(prompter ports.SecretPrompter, gate ports.AuthGate) (*CredentialHolder, error) {
	if prompter == nil {
		return nil, errors.New("secret prompter is required")
	}
	if gate == nil {
		return nil, errors.New("auth gate is required")
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate fingerprint key: %w", err)
	}

	return &CredentialHolder{
		prompter: prompter,
		gate:     gate,
		key:      key,
		rejected: make(map[fingerprint]struct{}),
	}, nil
}

// ObtainSecret returns the cached secret or waits on the shared prompt.
// A caller whose ctx ends stops waiting; the prompt itself keeps running
// for the others.
func (h *CredentialHolder) ObtainSecret(ctx context.Context, req ports.SecretPrompt) (domain.Secret, error) {
	if secret, ok := h.Cached(); ok {
		return secret, nil
	}

	generation := h.gate.Generation()
	ch := h.group.DoChan(string(req.Account), func() (any, error) {
		secret, err := h.prompter.PromptSecret(context.WithoutCancel(ctx), req)
		if err != nil {
			return domain.Secret{}, fmt.Errorf("prompt secret: %w", err)
		}
		if secret.IsZero() {
			return domain.Secret{}, domain.ErrSecretRequired
		}
		if h.gate.Generation() != generation {
			return domain.Secret{}, domain.ErrStaleAccountResponse
		}
		if h.isRejected(secret) {
			return domain.Secret{}, domain.ErrStaleSecret
		}

		h.Set(secret)
		return secret, nil
	})

	select {
	case <-ctx.Done():
		return domain.Secret{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Secret{}, res.Err
		}
		return res.Val.(domain.Secret), nil
	}
}

func (h *CredentialHolder) Cached() (domain.Secret, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.secret, !h.secret.IsZero()
}

func (h *CredentialHolder) Set(secret domain.Secret) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.secret = secret
}

// Reject drops secret from the cache and remembers it so the same value is
// never submitted again.
func (h *CredentialHolder) Reject(secret domain.Secret) {
	if secret.IsZero() {
		return
	}
	fp := h.fingerprint(secret)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.rejected[fp] = struct{}{}
	if h.secret.Equal(secret) {
		h.secret = domain.Secret{}
	}
}

// Clear forgets the cached secret and every rejected fingerprint.
func (h *CredentialHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.secret = domain.Secret{}
	h.rejected = make(map[fingerprint]struct{})
}

func (h *CredentialHolder) isRejected(secret domain.Secret) bool {
	fp := h.fingerprint(secret)

	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.rejected[fp]
	return ok
}

func (h *CredentialHolder) fingerprint(secret domain.Secret) fingerprint {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// Only reachable with a key longer than 64 bytes.
		panic(err)
	}
	_, _ = mac.Write([]byte(secret.Reveal()))

	var out fingerprint
	copy(out[:], mac.Sum(nil))
	return out
}
