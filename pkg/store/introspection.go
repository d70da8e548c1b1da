package store

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Root          string `json:"root"`
	Pattern       string `json:"pattern"`
	Extension     string `json:"extension"`
	Fields        int    `json:"fields"`
	Versioned     bool   `json:"versioned"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Root:          s.root,
		Pattern:       s.opts.pattern,
		Extension:     s.opts.extension,
		Fields:        s.schema.Len(),
		Versioned:     s.git != nil,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
