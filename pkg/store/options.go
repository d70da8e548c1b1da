package store

import (
	"log/slog"
	"strings"
)

// options holds the internal configuration for a Store.
type options struct {
	pattern   string
	extension string
	logger    *slog.Logger
	versioned bool
	create    bool
}

// Option defines a functional option for configuring a Store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		pattern:   "**/*.txt",
		extension: ".txt",
		create:    true,
	}
}

// WithPattern sets the glob used to discover document files, in
// doublestar syntax, relative to the store root. Defaults to "**/*.txt".
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithExtension sets the file extension appended to document IDs.
// Defaults to ".txt".
func WithExtension(ext string) Option {
	return func(o *options) {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		o.extension = ext
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithVersioning enables git commits on save and delete.
// By default, versioning is disabled.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.versioned = enabled
	}
}

// WithCreate controls whether New creates the root directory when it is
// missing. Enabled by default; disabled, a missing root is an error.
func WithCreate(create bool) Option {
	return func(o *options) {
		o.create = create
	}
}
