package abort

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortAllCancelsEveryHandleOfAccount(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := registry.CreateHandle(context.Background(), "rA")
	second := registry.CreateHandle(context.Background(), "rA")
	other := registry.CreateHandle(context.Background(), "rB")
	require.Equal(t, 2, registry.Pending("rA"))
	assert.NotEqual(t, first.ID, second.ID)

	registry.AbortAll("rA")

	assert.Equal(t, 0, registry.Pending("rA"))
	assert.True(t, first.Cancelled())
	assert.True(t, second.Cancelled())
	assert.ErrorIs(t, first.Context().Err(), context.Canceled)

	assert.False(t, other.Cancelled())
	assert.NoError(t, other.Context().Err())
	assert.Equal(t, 1, registry.Pending("rB"))
}

func TestReleaseRemovesOnlyThatHandle(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := registry.CreateHandle(context.Background(), "rA")
	second := registry.CreateHandle(context.Background(), "rA")

	first.Release()
	first.Release()

	assert.Equal(t, 1, registry.Pending("rA"))
	assert.False(t, first.Cancelled(), "released handles are not reported as aborted")

	registry.AbortAll("rA")
	assert.True(t, second.Cancelled())
}

func TestHandleErrMapsAbortToDomainError(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	handle := registry.CreateHandle(context.Background(), "rA")
	transportErr := errors.New("context canceled while reading body")

	assert.Equal(t, transportErr, handle.Err(transportErr))

	registry.AbortAll("rA")
	assert.ErrorIs(t, handle.Err(transportErr), domain.ErrRequestAborted)
	assert.NoError(t, handle.Err(nil))
}

func TestParentCancellationIsNotAnAbort(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	parent, cancel := context.WithCancel(context.Background())
	handle := registry.CreateHandle(parent, "rA")

	cancel()

	assert.ErrorIs(t, handle.Context().Err(), context.Canceled)
	assert.False(t, handle.Cancelled())
	handle.Release()
	assert.Equal(t, 0, registry.Pending("rA"))
}
