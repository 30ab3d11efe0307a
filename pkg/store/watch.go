package store

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventStateChanged indicates another writer rewrote or removed the state blob.
	EventStateChanged EventType = iota

	// EventWatchError signals the watcher could not classify what happened and
	// callers should reload to stay in sync.
	EventWatchError
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Err  error
}

// settle is how long a burst of filesystem activity must be quiet before it
// is reported. diskv writes through a temp file and a rename.
const settle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Writes made through this
// Persistence are not reported. The channel is closed once ctx is done or the
// watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 1)
	go p.watch(ctx, watcher, events)
	return events, nil
}

func (p *persistence) watch(ctx context.Context, watcher *fsnotify.Watcher, events chan<- Event) {
	defer close(events)
	defer watcher.Close()

	stateFile := filepath.Join(p.basePath, StateKey)

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var (
		dirty   bool
		lastErr error
	)
	send := func(ev Event) {
		select {
		case events <- ev:
		default:
			// Consumer is behind; one pending event is enough to make it reload.
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			lastErr = err
			timer.Reset(settle)
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != stateFile {
				continue
			}
			if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Rename) && !evt.Has(fsnotify.Remove) {
				continue
			}
			dirty = true
			timer.Reset(settle)
		case <-timer.C:
			if lastErr != nil {
				send(Event{Type: EventWatchError, Err: lastErr})
				lastErr = nil
			}
			if dirty && !p.ownWrite(stateFile) {
				send(Event{Type: EventStateChanged})
			}
			dirty = false
		}
	}
}

// ownWrite reports whether the blob on disk is the one this process saved last.
func (p *persistence) ownWrite(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Is(err, os.ErrNotExist) && p.written() == nil
	}
	sum := sha256.Sum256(data)
	last := p.written()
	return last != nil && *last == sum
}

func (p *persistence) written() *[sha256.Size]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *persistence) remember(data []byte) {
	sum := sha256.Sum256(data)
	p.mu.Lock()
	p.last = &sum
	p.mu.Unlock()
}
