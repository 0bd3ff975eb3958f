package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports/clocktest"
	"github.com/bnema/pft-wallet-cli/internal/ports/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type recordingCache struct{ log *eventLog }

func (c recordingCache) InvalidateAccount(account string) { c.log.add("cache.invalidate " + account) }
func (c recordingCache) Clear()                           { c.log.add("cache.clear") }

type recordingAborter struct{ log *eventLog }

func (a recordingAborter) AbortAll(account string) { a.log.add("abort " + account) }

type recordingMonitor struct{ log *eventLog }

func (m recordingMonitor) StartMonitoring(authenticated bool) {
	if authenticated {
		m.log.add("monitor.start auth")
		return
	}
	m.log.add("monitor.start basic")
}

func (m recordingMonitor) StopMonitoring()                  { m.log.add("monitor.stop") }
func (m recordingMonitor) ManualCheck(context.Context) bool { return true }
func (m recordingMonitor) Status() bool                     { return true }

type harness struct {
	api      *mocks.MockWalletAPI
	prompter *mocks.MockSecretPrompter
	profiles *mocks.MockProfileRepository
	clock    *clocktest.Clock
	log      *eventLog
	marker   *AccountMarker
	creds    *CredentialHolder
	sessions *SessionService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		api:      mocks.NewMockWalletAPI(t),
		prompter: mocks.NewMockSecretPrompter(t),
		profiles: mocks.NewMockProfileRepository(t),
		clock:    clocktest.New(testEpoch),
		log:      &eventLog{},
		marker:   NewAccountMarker(),
	}

	creds, err := NewCredentialHolder(h.prompter, h.marker)
	require.NoError(t, err)
	h.creds = creds

	sessions, err := NewSessionService(SessionConfig{
		API:         h.api,
		Marker:      h.marker,
		Credentials: creds,
		Profiles:    h.profiles,
		Cache:       recordingCache{log: h.log},
		Aborts:      recordingAborter{log: h.log},
		Monitor:     recordingMonitor{log: h.log},
		Clock:       h.clock,
	})
	require.NoError(t, err)
	h.sessions = sessions

	return h
}

// signIn activates a session without going through the backend.
func (h *harness) signIn(address domain.Address, username string) {
	h.marker.Switch(domain.Session{Authenticated: true, Address: address, Username: username})
}

func mockAnyContext() interface{} {
	return mock.Anything
}

func rejectedSecret() error {
	return &domain.APIError{Status: 401, Body: `{"detail":"Invalid password"}`}
}

func snapshotOf(t *testing.T, groups map[string][]domain.Task) domain.TaskSnapshot {
	t.Helper()

	snapshot, err := domain.NewTaskSnapshot(groups)
	require.NoError(t, err)
	return snapshot
}

func receiveUpdate(t *testing.T, updates <-chan TaskUpdate) TaskUpdate {
	t.Helper()

	select {
	case update := <-updates:
		return update
	case <-time.After(2 * time.Second):
		t.Fatal("no task update received")
		return TaskUpdate{}
	}
}

func assertNoUpdate(t *testing.T, updates <-chan TaskUpdate) {
	t.Helper()

	select {
	case update := <-updates:
		t.Fatalf("unexpected task update for %s", update.Address)
	case <-time.After(50 * time.Millisecond):
	}
}
