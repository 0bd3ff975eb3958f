package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pollInterval   = time.Minute
	proposedTaskID = domain.TaskID("2026-03-14_08:00__PR01")
	acceptedTaskID = domain.TaskID("2026-03-13_08:00__AC01")
)

func newCoordinator(t *testing.T, h *harness) (*TaskRefreshCoordinator, chan TaskUpdate) {
	t.Helper()

	coordinator := NewTaskRefreshCoordinator(h.api, h.marker, h.clock, pollInterval)
	h.api.EXPECT().StopRefresh(mockAnyContext(), domain.Address("rA")).Return(nil).Maybe()
	t.Cleanup(func() { coordinator.Close(context.Background()) })

	updates := make(chan TaskUpdate, 16)
	coordinator.Subscribe(func(update TaskUpdate) { updates <- update })
	return coordinator, updates
}

func sampleSnapshot(t *testing.T) domain.TaskSnapshot {
	t.Helper()

	return snapshotOf(t, map[string][]domain.Task{
		"proposed": {{ID: proposedTaskID, RewardOffered: 900}},
		"accepted": {{ID: acceptedTaskID, RewardOffered: 500}},
	})
}

func TestCoordinatorPollsImmediatelyAndOnEveryTick(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, updates := newCoordinator(t, h)

	h.api.EXPECT().StartRefresh(mockAnyContext(), domain.Address("rA")).Return(nil).Once()
	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).Return(sampleSnapshot(t), nil).Twice()

	require.NoError(t, coordinator.Start(context.Background(), "rA"))

	first := receiveUpdate(t, updates)
	assert.Equal(t, domain.Address("rA"), first.Address)
	assert.Equal(t, 2, first.Snapshot.Len())
	assert.Equal(t, StatePolling, coordinator.State())

	h.clock.Advance(pollInterval)
	second := receiveUpdate(t, updates)
	assert.Equal(t, 2, second.Snapshot.Len())
	assert.Equal(t, 1, h.clock.ActiveTickers())
}

func TestCoordinatorKeepsPollingWhenStartRefreshFails(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, updates := newCoordinator(t, h)

	h.api.EXPECT().StartRefresh(mockAnyContext(), domain.Address("rA")).Return(errors.New("busy")).Once()
	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).Return(sampleSnapshot(t), nil).Once()

	require.NoError(t, coordinator.Start(context.Background(), "rA"))
	update := receiveUpdate(t, updates)
	assert.NoError(t, update.Err)
}

func TestCoordinatorStartRequiresActiveAccount(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, _ := newCoordinator(t, h)

	err := coordinator.Start(context.Background(), "rZ")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Equal(t, StateIdle, coordinator.State())
}

func TestCoordinatorDeliversNothingAfterStop(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, updates := newCoordinator(t, h)

	entered := make(chan struct{})
	h.api.EXPECT().StartRefresh(mockAnyContext(), domain.Address("rA")).Return(nil).Once()
	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).Return(sampleSnapshot(t), nil).Once()
	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).
		RunAndReturn(func(ctx context.Context, _ domain.Address) (domain.TaskSnapshot, error) {
			close(entered)
			<-ctx.Done()
			return domain.TaskSnapshot{}, ctx.Err()
		}).Once()

	require.NoError(t, coordinator.Start(context.Background(), "rA"))
	receiveUpdate(t, updates)

	h.clock.Advance(pollInterval)
	<-entered

	coordinator.Stop(context.Background())
	assert.Equal(t, StateStopped, coordinator.State())
	assert.Equal(t, 0, h.clock.ActiveTickers())
	h.api.AssertCalled(t, "StopRefresh", mockAnyContext(), domain.Address("rA"))

	h.clock.Advance(pollInterval)
	assertNoUpdate(t, updates)
}

func TestCoordinatorRestartKeepsSingleLoop(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, updates := newCoordinator(t, h)

	h.api.EXPECT().StartRefresh(mockAnyContext(), domain.Address("rA")).Return(nil).Twice()
	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).Return(sampleSnapshot(t), nil).Times(3)

	require.NoError(t, coordinator.Start(context.Background(), "rA"))
	receiveUpdate(t, updates)
	require.NoError(t, coordinator.Start(context.Background(), "rA"))
	receiveUpdate(t, updates)

	assert.Equal(t, 1, h.clock.ActiveTickers())
	h.clock.Advance(pollInterval)
	receiveUpdate(t, updates)
	assertNoUpdate(t, updates)
}

func TestCoordinatorConcurrentStartsLeaveOneLoop(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, _ := newCoordinator(t, h)

	h.api.EXPECT().StartRefresh(mockAnyContext(), domain.Address("rA")).Return(nil).Maybe()
	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).Return(sampleSnapshot(t), nil).Maybe()

	// Each run publishes at most one update, which fits the subscriber buffer.
	const starts = 8
	var wg sync.WaitGroup
	for i := 0; i < starts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, coordinator.Start(context.Background(), "rA"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, h.clock.ActiveTickers(), "every replaced run is halted")
	coordinator.Stop(context.Background())
	assert.Equal(t, 0, h.clock.ActiveTickers())
	assert.Equal(t, StateStopped, coordinator.State())
}

func TestCoordinatorHaltsOnAccountSwitch(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")

	var stopped int
	h.api.EXPECT().StopRefresh(mockAnyContext(), domain.Address("rA")).
		RunAndReturn(func(context.Context, domain.Address) error {
			assert.True(t, h.marker.IsCurrentAccount("rA"), "stop-refresh is sent for the still-active account")
			stopped++
			return nil
		}).Once()
	coordinator, updates := newCoordinator(t, h)

	h.api.EXPECT().StartRefresh(mockAnyContext(), domain.Address("rA")).Return(nil).Once()
	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).Return(sampleSnapshot(t), nil).Once()

	require.NoError(t, coordinator.Start(context.Background(), "rA"))
	receiveUpdate(t, updates)

	h.profiles.EXPECT().Load(mockAnyContext()).Return(domain.Profile{Address: "rB", Username: "bob"}, nil).Once()
	changed, err := h.sessions.FollowProfile(context.Background())
	require.NoError(t, err)
	require.True(t, changed)

	assert.Equal(t, 1, stopped)

	assert.Equal(t, StateStopped, coordinator.State())
	assert.Equal(t, 0, coordinator.Snapshot().Len(), "previous account's tasks are dropped")
	assert.Equal(t, 0, h.clock.ActiveTickers())

	h.clock.Advance(pollInterval)
	assertNoUpdate(t, updates)
}

func TestCoordinatorDropsResponseForSupersededAccount(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, updates := newCoordinator(t, h)
	coordinator.Adopt("rA", sampleSnapshot(t))
	receiveUpdate(t, updates)

	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).
		RunAndReturn(func(context.Context, domain.Address) (domain.TaskSnapshot, error) {
			h.signIn("rB", "bob")
			return sampleSnapshot(t), nil
		}).Once()

	coordinator.RefreshNow(context.Background())
	assertNoUpdate(t, updates)
	assert.Equal(t, 0, coordinator.Snapshot().Len())
}

func TestCoordinatorReportsPendingActionThatVanished(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, updates := newCoordinator(t, h)

	requested := domain.TaskID("2026-03-14_09:30__RQ42")
	coordinator.Adopt("rA", sampleSnapshot(t))
	coordinator.ApplyOptimistic("rA", requested, domain.Message{Direction: domain.DirectionOutbound, Data: "REQUEST_POST_FIAT ___ more work"})
	coordinator.ApplyOptimistic("rA", proposedTaskID, domain.Message{Direction: domain.DirectionOutbound, Data: "ACCEPTANCE REASON ___ sure"})
	receiveUpdate(t, updates)
	optimistic := receiveUpdate(t, updates)
	receiveUpdate(t, updates)

	pending, ok := optimistic.Snapshot.Find(requested)
	require.True(t, ok)
	assert.Equal(t, domain.TaskRequested, pending.Status)
	assert.True(t, pending.HasPending())

	accepted := snapshotOf(t, map[string][]domain.Task{
		"accepted": {{ID: proposedTaskID, RewardOffered: 900}, {ID: acceptedTaskID, RewardOffered: 500}},
	})
	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).Return(accepted, nil).Once()
	coordinator.RefreshNow(context.Background())

	update := receiveUpdate(t, updates)
	assert.Equal(t, []domain.ReconcileNotice{{TaskID: requested, Message: domain.NoticeActionMayNotHaveApplied}}, update.Notices)
	assert.Equal(t, 2, update.Snapshot.Len())

	proposed, ok := update.Snapshot.Find(proposedTaskID)
	require.True(t, ok)
	assert.False(t, proposed.HasPending(), "server state replaces optimistic entries")
}

func TestCoordinatorKeepsSnapshotOnFetchError(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, updates := newCoordinator(t, h)
	coordinator.Adopt("rA", sampleSnapshot(t))
	receiveUpdate(t, updates)

	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).
		Return(domain.TaskSnapshot{}, &domain.APIError{Status: 503, Body: "unavailable"}).Once()
	coordinator.RefreshNow(context.Background())

	update := receiveUpdate(t, updates)
	require.Error(t, update.Err)
	assert.Equal(t, 2, update.Snapshot.Len())
	assert.Equal(t, 2, coordinator.Snapshot().Len())
}

func TestCoordinatorSkipsUnknownGroupsButKeepsKnownTasks(t *testing.T) {
	h := newHarness(t)
	h.signIn("rA", "alice")
	coordinator, updates := newCoordinator(t, h)
	coordinator.Adopt("rA", domain.TaskSnapshot{})
	receiveUpdate(t, updates)

	partial, err := domain.NewTaskSnapshot(map[string][]domain.Task{
		"proposed":  {{ID: proposedTaskID}},
		"escalated": {{ID: "2026-03-14_07:00__ES01"}},
	})
	require.Error(t, err)
	h.api.EXPECT().Tasks(mockAnyContext(), domain.Address("rA")).Return(partial, err).Once()
	coordinator.RefreshNow(context.Background())

	update := receiveUpdate(t, updates)
	assert.ErrorIs(t, update.Err, domain.ErrUnknownTaskStatus)
	assert.Equal(t, 1, update.Snapshot.Len())
	assert.Equal(t, 1, coordinator.Snapshot().Len())
}

func TestRefreshStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "server-refresh-requested", StateServerRefreshRequested.String())
	assert.Equal(t, "polling", StatePolling.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", RefreshState(42).String())
}
