// Package abort tracks cancellable in-flight requests per account.
package abort

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// errAborted is the cancellation cause of handles cancelled by AbortAll.
var errAborted = domain.ErrRequestAborted

type Registry struct {
	mu      sync.Mutex
	pending map[string][]*Handle
	logger  zerolog.Logger
}

var _ ports.RequestAborter = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		pending: make(map[string][]*Handle),
		logger:  log.Logger.With().Str("component", "abort").Logger(),
	}
}

// Handle is the cancellation handle of one in-flight request.
type Handle struct {
	ID      uuid.UUID
	Account string

	ctx      context.Context
	cancel   context.CancelCauseFunc
	registry *Registry
	once     sync.Once
}

// CreateHandle registers a new handle for account derived from parent. The
// caller must Release it once the request settles.
func (r *Registry) CreateHandle(parent context.Context, account string) *Handle {
	ctx, cancel := context.WithCancelCause(parent)
	handle := &Handle{
		ID:       uuid.New(),
		Account:  account,
		ctx:      ctx,
		cancel:   cancel,
		registry: r,
	}

	r.mu.Lock()
	r.pending[account] = append(r.pending[account], handle)
	r.mu.Unlock()

	return handle
}

// AbortAll cancels every pending handle of account and resets its list.
func (r *Registry) AbortAll(account string) {
	r.mu.Lock()
	handles := r.pending[account]
	delete(r.pending, account)
	r.mu.Unlock()

	for _, handle := range handles {
		handle.cancel(errAborted)
	}

	if len(handles) > 0 {
		r.logger.Debug().Str("account", account).Int("handles", len(handles)).Msg("aborted pending requests")
	}
}

// Pending returns how many handles are registered for account.
func (r *Registry) Pending(account string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending[account])
}

func (r *Registry) remove(handle *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handles := r.pending[handle.Account]
	for i, candidate := range handles {
		if candidate == handle {
			handles = append(handles[:i:i], handles[i+1:]...)
			break
		}
	}
	if len(handles) == 0 {
		delete(r.pending, handle.Account)
		return
	}
	r.pending[handle.Account] = handles
}

func (h *Handle) Context() context.Context {
	return h.ctx
}

// Cancelled reports whether the handle was aborted through its registry.
func (h *Handle) Cancelled() bool {
	return errors.Is(context.Cause(h.ctx), errAborted)
}

// Err maps an aborted request to domain.ErrRequestAborted and leaves other
// errors untouched.
func (h *Handle) Err(err error) error {
	if err != nil && h.Cancelled() {
		return errAborted
	}

	return err
}

// Release removes the handle from its account list and frees its context.
func (h *Handle) Release() {
	h.once.Do(func() {
		h.registry.remove(h)
		h.cancel(context.Canceled)
	})
}
