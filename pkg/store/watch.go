package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of change observed in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to one document.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}

// debounceWindow is the quiet period before a filesystem event is
// forwarded, collapsing editor write bursts into a single event.
const debounceWindow = 50 * time.Millisecond

// Watch emits an event for every document created, modified, or deleted
// under the store root until ctx is cancelled. Only files matching the
// store pattern are reported. The watcher goroutine is supervised, and
// the returned channel closes once watching stops.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := s.addRecursive(watcher); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	events := make(chan Event)
	deb := newDebouncer(debounceWindow)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.setWatcherActive(false)
		defer watcher.Close()

		err := s.watchLoop(ctx, watcher, deb, events)

		// Let in-flight debounce timers drain before the channel closes.
		deb.stopAndWait(5 * time.Second)
		close(events)
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("watcher stopped", "error", err)
	}))

	return events, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, deb *debouncer, events chan<- Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}

			// Directories appearing under the root must be watched too.
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watcher.Add(ev.Name)
					continue
				}
			}

			id, ok := s.resolveID(ev.Name)
			if !ok {
				continue
			}
			etype := mapEventType(ev)
			if etype == "" {
				continue
			}
			s.logger.Debug("event received", "type", etype, "id", id)

			deb.add(Event{Type: etype, ID: id, Timestamp: time.Now().Unix()}, func(e Event) {
				s.send(ctx, events, e)
			})

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// send delivers e unless the consumer is gone. A late debounce timer may
// fire after the channel closed; the recover keeps that from panicking.
func (s *Store) send(ctx context.Context, events chan<- Event, e Event) {
	defer func() {
		_ = recover()
	}()
	select {
	case events <- e:
	case <-ctx.Done():
	}
}

// resolveID maps an absolute event path to a document ID. Paths outside
// the pattern (the .git tree, the lock file, foreign files) resolve to
// nothing.
func (s *Store) resolveID(name string) (string, bool) {
	rel, err := filepath.Rel(s.root, name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".git" || strings.HasPrefix(rel, ".git/") {
		return "", false
	}
	if ok, err := doublestar.Match(s.opts.pattern, rel); err != nil || !ok {
		return "", false
	}
	return strings.TrimSuffix(rel, s.opts.extension), true
}

func mapEventType(ev fsnotify.Event) EventType {
	switch {
	case ev.Has(fsnotify.Create):
		return EventCreate
	case ev.Has(fsnotify.Write):
		return EventModify
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return EventDelete
	}
	return ""
}

// addRecursive watches the root and every directory below it, skipping
// the .git tree.
func (s *Store) addRecursive(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
