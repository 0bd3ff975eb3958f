// Package watcher reports changes to the persisted profile file so a
// long-running pfw process notices sign-outs and account switches made by
// another invocation.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher watches the parent directory, since editors and atomic writers
// replace the file rather than modify it in place.
type Watcher struct {
	targetPath string
	parentPath string
	onChange   func()
	watcher    *fsnotify.Watcher
	logger     zerolog.Logger
	debounce   time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func New(targetPath string, onChange func()) (*Watcher, error) {
	if targetPath == "" {
		return nil, errors.New("watch target path is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	targetPath = filepath.Clean(targetPath)

	return &Watcher{
		targetPath: targetPath,
		parentPath: filepath.Dir(targetPath),
		onChange:   onChange,
		watcher:    fsw,
		logger:     log.Logger.With().Str("component", "watcher").Logger(),
		debounce:   defaultDebounce,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}, nil
}

// Start creates the parent directory if needed and begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	if err := os.MkdirAll(w.parentPath, 0o700); err != nil {
		return err
	}
	if err := w.watcher.Add(w.parentPath); err != nil {
		return err
	}
	w.running = true

	go w.watchLoop()
	return nil
}

// Stop stops the watcher and waits for pending callbacks to settle.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	w.cancel()
	err := w.watcher.Close()
	<-w.done

	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.targetPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.logger.Debug().Str("path", w.targetPath).Str("op", event.Op.String()).Msg("profile changed")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.fire)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) fire() {
	if w.ctx.Err() != nil || w.onChange == nil {
		return
	}

	w.onChange()
}
