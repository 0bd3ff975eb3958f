// Package connection watches backend liveness and notifies listeners when
// reachability flips.
package connection

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/pft-wallet-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultInterval     = 5 * time.Second
	defaultProbeTimeout = 4 * time.Second
)

type Config struct {
	Prober       ports.HealthProber
	Clock        ports.Clock
	Interval     time.Duration
	ProbeTimeout time.Duration
	Logger       *zerolog.Logger
}

type Monitor struct {
	prober       ports.HealthProber
	clock        ports.Clock
	interval     time.Duration
	probeTimeout time.Duration
	logger       zerolog.Logger
	probes       metric.Int64Counter

	mu            sync.Mutex
	connected     bool
	authenticated bool
	cancel        context.CancelFunc
	done          chan struct{}
	listeners     map[int]func(bool)
	nextListener  int
}

var _ ports.ConnectionMonitor = (*Monitor)(nil)

func NewMonitor(cfg Config) *Monitor {
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = defaultProbeTimeout
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	probes, err := otel.Meter("github.com/bnema/pft-wallet-cli/connection").Int64Counter(
		"pfw.connection.probes",
		metric.WithDescription("Liveness probes by outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &Monitor{
		prober:       cfg.Prober,
		clock:        cfg.Clock,
		interval:     cfg.Interval,
		probeTimeout: cfg.ProbeTimeout,
		logger:       logger.With().Str("component", "connection").Logger(),
		probes:       probes,
		connected:    true,
		listeners:    make(map[int]func(bool)),
	}
}

// StartMonitoring runs the probe loop, replacing any loop already running.
// The first probe fires one interval after the start.
func (m *Monitor) StartMonitoring(authenticated bool) {
	m.StopMonitoring()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ticker := m.clock.NewTicker(m.interval)

	m.mu.Lock()
	m.authenticated = authenticated
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	m.logger.Debug().Bool("authenticated", authenticated).Dur("interval", m.interval).Msg("monitoring started")

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				m.check(ctx, authenticated)
			}
		}
	}()
}

// StopMonitoring stops the loop and waits for it to exit.
func (m *Monitor) StopMonitoring() {
	m.mu.Lock()
	cancel := m.cancel
	done := m.done
	m.cancel = nil
	m.done = nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// ManualCheck probes immediately, outside the loop schedule.
func (m *Monitor) ManualCheck(ctx context.Context) bool {
	m.mu.Lock()
	authenticated := m.authenticated
	m.mu.Unlock()

	return m.check(ctx, authenticated)
}

func (m *Monitor) Status() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.connected
}

// Subscribe registers listener for connectivity changes.
func (m *Monitor) Subscribe(listener func(connected bool)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextListener
	m.nextListener++
	m.listeners[id] = listener
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Monitor) check(ctx context.Context, authenticated bool) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()

	err := m.prober.Probe(probeCtx, authenticated)
	if err != nil && ctx.Err() != nil {
		return m.Status()
	}
	reachable := err == nil

	if m.probes != nil {
		m.probes.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("reachable", reachable)))
	}
	if err != nil {
		m.logger.Debug().Err(err).Msg("probe failed")
	}

	m.mu.Lock()
	changed := m.connected != reachable
	m.connected = reachable
	listeners := make([]func(bool), 0, len(m.listeners))
	if changed {
		for _, listener := range m.listeners {
			listeners = append(listeners, listener)
		}
	}
	m.mu.Unlock()

	if changed {
		if reachable {
			m.logger.Info().Msg("server reachable again")
		} else {
			m.logger.Warn().Msg("server unavailable")
		}
		for _, listener := range listeners {
			listener(reachable)
		}
	}

	return reachable
}
