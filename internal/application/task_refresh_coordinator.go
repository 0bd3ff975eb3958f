package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/domain"
	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultTaskPollInterval = 30 * time.Second

type RefreshState int

const (
	StateIdle RefreshState = iota
	StateServerRefreshRequested
	StatePolling
	StateStopped
)

func (s RefreshState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateServerRefreshRequested:
		return "server-refresh-requested"
	case StatePolling:
		return "polling"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// TaskUpdate is delivered to subscribers after every poll or local change.
// Err carries a visible fetch failure; the snapshot then stays the last
// known one.
type TaskUpdate struct {
	Address  domain.Address
	Snapshot domain.TaskSnapshot
	Notices  []domain.ReconcileNotice
	Err      error
}

// TaskRefreshCoordinator keeps one account's task list fresh. At most one
// poll loop runs at a time.
type TaskRefreshCoordinator struct {
	api      ports.WalletAPI
	gate     ports.AuthGate
	clock    ports.Clock
	interval time.Duration
	logger   zerolog.Logger

	// startMu serialises Start and Stop so a run is never replaced
	// without being halted.
	startMu sync.Mutex

	mu           sync.Mutex
	state        RefreshState
	address      domain.Address
	generation   uint64
	snapshot     domain.TaskSnapshot
	cancel       context.CancelFunc
	done         chan struct{}
	listeners    map[int]func(TaskUpdate)
	nextListener int

	unsubscribeGate func()
}

func NewTaskRefreshCoordinator(api ports.WalletAPI, gate ports.AuthGate, clock ports.Clock, interval time.Duration) *TaskRefreshCoordinator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultTaskPollInterval
	}

	c := &TaskRefreshCoordinator{
		api:       api,
		gate:      gate,
		clock:     clock,
		interval:  interval,
		logger:    log.Logger.With().Str("component", "tasks").Logger(),
		listeners: make(map[int]func(TaskUpdate)),
	}
	c.unsubscribeGate = gate.Subscribe(c.onAccountSwitch)

	return c
}

// Start begins polling address, replacing any previous run.
func (c *TaskRefreshCoordinator) Start(ctx context.Context, address domain.Address) error {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	if !c.gate.IsCurrentAccount(address) {
		return domain.ErrNotAuthenticated
	}

	c.stop(ctx)

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	ticker := c.clock.NewTicker(c.interval)

	c.mu.Lock()
	if c.address != address {
		c.snapshot = domain.TaskSnapshot{}
	}
	c.state = StateServerRefreshRequested
	c.address = address
	c.generation = c.gate.Generation()
	c.cancel = cancel
	c.done = done
	generation := c.generation
	c.mu.Unlock()

	c.logger.Debug().Str("account", address.String()).Dur("interval", c.interval).Msg("task refresh started")

	go func() {
		defer close(done)
		defer ticker.Stop()

		if err := c.api.StartRefresh(loopCtx, address); err != nil && !domain.IsSilent(err) && loopCtx.Err() == nil {
			c.logger.Warn().Err(err).Str("account", address.String()).Msg("start refresh failed")
		}

		c.mu.Lock()
		if c.done == done {
			c.state = StatePolling
		}
		c.mu.Unlock()

		c.poll(loopCtx, address, generation)
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C():
				c.poll(loopCtx, address, generation)
			}
		}
	}()

	return nil
}

// Stop ends the current run. No poll is delivered after Stop returns.
func (c *TaskRefreshCoordinator) Stop(ctx context.Context) {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	c.stop(ctx)
}

func (c *TaskRefreshCoordinator) stop(ctx context.Context) {
	c.mu.Lock()
	cancel, done, address := c.cancel, c.done, c.address
	running := cancel != nil
	c.mu.Unlock()

	if !running {
		c.mu.Lock()
		if c.state != StateIdle {
			c.state = StateStopped
		}
		c.mu.Unlock()
		return
	}

	if c.gate.IsCurrentAccount(address) {
		if err := c.api.StopRefresh(ctx, address); err != nil && !domain.IsSilent(err) {
			c.logger.Warn().Err(err).Str("account", address.String()).Msg("stop refresh failed")
		}
	}

	c.halt(cancel, done)
}

// Close stops polling and detaches from the account marker.
func (c *TaskRefreshCoordinator) Close(ctx context.Context) {
	c.Stop(ctx)
	if c.unsubscribeGate != nil {
		c.unsubscribeGate()
	}
}

// RefreshNow polls once outside the schedule.
func (c *TaskRefreshCoordinator) RefreshNow(ctx context.Context) {
	c.mu.Lock()
	address := c.address
	c.mu.Unlock()

	if address.IsZero() {
		return
	}
	c.poll(ctx, address, c.gate.Generation())
}

func (c *TaskRefreshCoordinator) State() RefreshState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *TaskRefreshCoordinator) Snapshot() domain.TaskSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot
}

// Adopt installs snapshot fetched outside the poll loop for address.
func (c *TaskRefreshCoordinator) Adopt(address domain.Address, snapshot domain.TaskSnapshot) {
	c.mu.Lock()
	if c.address != "" && c.address != address {
		c.mu.Unlock()
		return
	}
	c.address = address
	c.snapshot = snapshot
	update := TaskUpdate{Address: address, Snapshot: snapshot}
	c.mu.Unlock()

	c.publish(update)
}

// ApplyOptimistic splices a pending message into the local snapshot until
// the next poll replaces it.
func (c *TaskRefreshCoordinator) ApplyOptimistic(address domain.Address, id domain.TaskID, msg domain.Message) {
	msg.Pending = true

	c.mu.Lock()
	if c.address != address {
		c.mu.Unlock()
		return
	}
	c.snapshot = c.snapshot.WithOptimistic(id, msg)
	update := TaskUpdate{Address: address, Snapshot: c.snapshot}
	c.mu.Unlock()

	c.publish(update)
}

func (c *TaskRefreshCoordinator) Subscribe(listener func(TaskUpdate)) func() {
	c.mu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = listener
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *TaskRefreshCoordinator) poll(ctx context.Context, address domain.Address, generation uint64) {
	next, err := c.api.Tasks(ctx, address)

	if ctx.Err() != nil || c.gate.Generation() != generation || !c.gate.IsCurrentAccount(address) {
		return
	}
	if err != nil && domain.IsSilent(err) {
		return
	}
	if err != nil && !errors.Is(err, domain.ErrUnknownTaskStatus) {
		c.logger.Debug().Err(err).Str("account", address.String()).Msg("task poll failed")
		c.mu.Lock()
		update := TaskUpdate{Address: address, Snapshot: c.snapshot, Err: err}
		c.mu.Unlock()
		c.publish(update)
		return
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("account", address.String()).Msg("task groups skipped")
	}

	c.mu.Lock()
	if c.address != address {
		c.mu.Unlock()
		return
	}
	merged, notices := domain.Reconcile(c.snapshot, next)
	c.snapshot = merged
	update := TaskUpdate{Address: address, Snapshot: merged, Notices: notices, Err: err}
	c.mu.Unlock()

	for _, notice := range notices {
		c.logger.Info().Str("task", notice.TaskID.String()).Msg(notice.Message)
	}
	c.publish(update)
}

func (c *TaskRefreshCoordinator) publish(update TaskUpdate) {
	c.mu.Lock()
	listeners := make([]func(TaskUpdate), 0, len(c.listeners))
	for _, listener := range c.listeners {
		listeners = append(listeners, listener)
	}
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(update)
	}
}

// onAccountSwitch halts polling on every account switch, since the loop's
// generation is now stale. The session posts stop-refresh for the previous
// account before the switch.
func (c *TaskRefreshCoordinator) onAccountSwitch(session domain.Session) {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	if !session.Authenticated || session.Address != c.address {
		c.snapshot = domain.TaskSnapshot{}
		c.address = ""
	}
	c.mu.Unlock()

	if cancel != nil {
		c.halt(cancel, done)
	}
}

func (c *TaskRefreshCoordinator) halt(cancel context.CancelFunc, done chan struct{}) {
	cancel()
	<-done

	c.mu.Lock()
	if c.done == done {
		c.cancel = nil
		c.done = nil
		c.state = StateStopped
	}
	c.mu.Unlock()
}
