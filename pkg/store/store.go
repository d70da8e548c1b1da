// Package store persists documents of one schema as plain-text files
// under a root directory, with optional git versioning and filesystem
// watching. IDs are slash-separated paths relative to the root, without
// the file extension.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/vellum/pkg/docs"
	"github.com/aretw0/vellum/pkg/git"
)

// Store is a directory of documents sharing one schema, one file per
// document.
type Store struct {
	root   string
	schema *docs.Schema
	opts   *options
	git    *git.Client
	logger *slog.Logger

	mu            sync.RWMutex
	watcherActive bool
}

// New opens a store rooted at root. The root directory is created when
// missing unless WithCreate(false) was given. With WithVersioning(true)
// the root becomes a git repository and every save and delete commits.
func New(root string, schema *docs.Schema, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	if o.create {
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store root: %w", err)
		}
	} else {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("store root is not a directory: %s", root)
		}
	}

	s := &Store{
		root:   root,
		schema: schema,
		opts:   o,
		logger: logger,
	}

	if o.versioned {
		if !git.IsInstalled() {
			return nil, fmt.Errorf("git is not installed")
		}
		s.git = git.NewClient(root, ".vellum.lock", logger)
		if !s.git.IsRepo() {
			if err := s.git.Init(); err != nil {
				return nil, fmt.Errorf("failed to git init: %w", err)
			}
		}
	}

	return s, nil
}

// Schema returns the schema shared by every document in the store.
func (s *Store) Schema() *docs.Schema { return s.schema }

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// Path returns the file that backs id, whether or not it exists.
func (s *Store) Path(id string) string {
	return filepath.Join(s.root, filepath.FromSlash(id)+s.opts.extension)
}

// filename validates id and returns the root-relative file name.
func (s *Store) filename(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("document has no ID")
	}
	if strings.HasPrefix(id, "/") || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid document ID: %s", id)
	}
	return filepath.FromSlash(id) + s.opts.extension, nil
}

// List returns the IDs of every document matching the store pattern,
// sorted.
func (s *Store) List() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(s.root), s.opts.pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s: %w", s.opts.pattern, err)
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(m, s.opts.extension))
	}
	sort.Strings(ids)
	return ids, nil
}

// Load opens the document stored under id.
func (s *Store) Load(id string) (*docs.Document, error) {
	if _, err := s.filename(id); err != nil {
		return nil, err
	}
	return s.schema.Open(s.Path(id))
}

// Save persists doc under id, creating parent directories as needed.
// With versioning on, the change is committed as "docs(ID): update".
func (s *Store) Save(id string, doc *docs.Document) error {
	filename, err := s.filename(id)
	if err != nil {
		return err
	}

	path := filepath.Join(s.root, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := doc.Save(path); err != nil {
		return err
	}
	s.logger.Debug("document saved", "id", id, "path", path)

	return s.record(filename, "docs("+id+"): update")
}

// Delete removes the document stored under id. With versioning on, the
// removal is committed as "docs(ID): delete".
func (s *Store) Delete(id string) error {
	filename, err := s.filename(id)
	if err != nil {
		return err
	}

	path := filepath.Join(s.root, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("document not found: %s", id)
		}
		return err
	}

	if s.git == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		s.logger.Debug("document deleted", "id", id)
		return nil
	}

	unlock, err := s.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := s.git.Rm(filename); err != nil {
		return fmt.Errorf("failed to git rm: %w", err)
	}
	if err := s.git.Commit("docs(" + id + "): delete"); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	s.logger.Debug("document deleted", "id", id)
	return nil
}

// record stages filename and commits when versioning is on. A save that
// produced identical bytes stages nothing, so the commit is skipped.
func (s *Store) record(filename, msg string) error {
	if s.git == nil {
		return nil
	}

	unlock, err := s.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := s.git.Add(filename); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}

	status, err := s.git.Run("status", "--porcelain", "--", filename)
	if err != nil {
		return fmt.Errorf("failed to git status: %w", err)
	}
	if status == "" {
		return nil
	}

	if err := s.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}
