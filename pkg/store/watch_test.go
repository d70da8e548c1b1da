package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vellum/pkg/store"
)

// setupWatch builds a store and starts watching it. The context is
// cancelled when the test ends.
func setupWatch(t *testing.T) (*store.Store, <-chan store.Event) {
	t.Helper()

	s, err := store.New(t.TempDir(), noteSchema(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	events, err := s.Watch(ctx)
	require.NoError(t, err)
	require.NotNil(t, events)

	// Give the watcher a moment to settle.
	time.Sleep(100 * time.Millisecond)

	return s, events
}

// waitEvent reads one event or fails the test after a timeout.
func waitEvent(t *testing.T, events <-chan store.Event) store.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "event channel closed early")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return store.Event{}
	}
}

func TestWatchSaveEmitsCreate(t *testing.T) {
	s, events := setupWatch(t)

	schema := s.Schema()
	require.NoError(t, s.Save("greeting", newNote(t, schema, "Hi")))

	e := waitEvent(t, events)
	assert.Equal(t, store.EventCreate, e.Type)
	assert.Equal(t, "greeting", e.ID)
	assert.NotZero(t, e.Timestamp)
}

func TestWatchExternalWriteEmitsModify(t *testing.T) {
	s, events := setupWatch(t)

	require.NoError(t, s.Save("note", newNote(t, s.Schema(), "v1")))
	e := waitEvent(t, events)
	require.Equal(t, store.EventCreate, e.Type)

	// An in-place append, the way an editor would touch the file.
	f, err := os.OpenFile(s.Path("note"), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("\nmore\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	e = waitEvent(t, events)
	assert.Equal(t, store.EventModify, e.Type)
	assert.Equal(t, "note", e.ID)
}

func TestWatchDeleteEmitsDelete(t *testing.T) {
	s, events := setupWatch(t)

	require.NoError(t, s.Save("doomed", newNote(t, s.Schema(), "Bye")))
	e := waitEvent(t, events)
	require.Equal(t, "doomed", e.ID)

	require.NoError(t, s.Delete("doomed"))
	e = waitEvent(t, events)
	assert.Equal(t, store.EventDelete, e.Type)
	assert.Equal(t, "doomed", e.ID)
}

func TestWatchIgnoresForeignFiles(t *testing.T) {
	s, events := setupWatch(t)

	// Outside the pattern: no event may surface for it.
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "scratch.md"), []byte("x"), 0644))

	select {
	case e := <-events:
		t.Fatalf("unexpected event for foreign file: %v", e)
	case <-time.After(300 * time.Millisecond):
	}

	// The watcher is still alive for matching files.
	require.NoError(t, s.Save("real", newNote(t, s.Schema(), "Real")))
	e := waitEvent(t, events)
	assert.Equal(t, "real", e.ID)
}

func TestWatchSubdirectories(t *testing.T) {
	s, events := setupWatch(t)

	// Parent directory exists before the save: recursion is covered by
	// the initial walk plus directory-create handling.
	require.NoError(t, os.MkdirAll(filepath.Join(s.Root(), "sub"), 0755))
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, s.Save("sub/item", newNote(t, s.Schema(), "Deep")))

	e := waitEvent(t, events)
	assert.Equal(t, "sub/item", e.ID)
}

func TestWatchStateAndShutdown(t *testing.T) {
	s, err := store.New(t.TempDir(), noteSchema(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := s.Watch(ctx)
	require.NoError(t, err)

	state := s.State().(store.StoreState)
	assert.True(t, state.WatcherActive)

	cancel()

	// The channel drains and closes once the worker stops.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 3*time.Second, 20*time.Millisecond, "channel should close after cancel")

	require.Eventually(t, func() bool {
		return !s.State().(store.StoreState).WatcherActive
	}, 3*time.Second, 20*time.Millisecond, "watcher should report inactive")
}
