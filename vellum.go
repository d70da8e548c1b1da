package vellum

import (
	"log/slog"

	"github.com/aretw0/vellum/pkg/docs"
	"github.com/aretw0/vellum/pkg/manifest"
	"github.com/aretw0/vellum/pkg/store"
)

// --- Types ---

// Document is a public alias for the document model.
type Document = docs.Document

// Schema is a public alias for a compiled field declaration set.
type Schema = docs.Schema

// Builder is a public alias for the schema builder.
type Builder = docs.Builder

// Field is a public alias for a single schema field.
type Field = docs.Field

// Values is a public alias for named construction arguments.
type Values = docs.Values

// Kind is a public alias for a field's codec.
type Kind = docs.Kind

// Validator is a public alias for a field validation function.
type Validator = docs.Validator

// Defaulter is a public alias for a computed-default function.
type Defaulter = docs.Defaulter

// Problem is a public alias for a single construction or validation defect.
type Problem = docs.Problem

// InvalidDocument is a public alias for the aggregated problem error.
type InvalidDocument = docs.InvalidDocument

// ConversionError is a public alias for a value that does not fit a kind.
type ConversionError = docs.ConversionError

// Store is a public alias for the document store.
type Store = store.Store

// Event is a public alias for a store change notification.
type Event = store.Event

// EventType is a public alias for the kind of store change.
type EventType = store.EventType

// Store event types.
const (
	EventCreate = store.EventCreate
	EventModify = store.EventModify
	EventDelete = store.EventDelete
)

// ErrNoPath is returned by Save when a document has no target path.
var ErrNoPath = docs.ErrNoPath

// --- Fields ---

// NewBuilder starts a new schema declaration.
func NewBuilder() *Builder {
	return docs.NewBuilder()
}

// NewField declares a field of a custom kind.
func NewField(kind Kind) *Field {
	return docs.NewField(kind)
}

// Text declares a free-form string field.
func Text() *Field { return docs.Text() }

// Int declares an integer field.
func Int() *Field { return docs.Int() }

// Bool declares a boolean field.
func Bool() *Field { return docs.Bool() }

// DateTime declares a timestamp field.
func DateTime() *Field { return docs.DateTime() }

// AutoNow declares a timestamp field stamped on every save.
func AutoNow() *Field { return docs.AutoNow() }

// Tags declares a list-of-strings field.
func Tags() *Field { return docs.Tags() }

// UUID declares a UUID field.
func UUID() *Field { return docs.UUID() }

// AutoUUID declares a UUID field minted on first save.
func AutoUUID() *Field { return docs.AutoUUID() }

// --- Configuration ---

// Option defines a functional option for configuring a Store.
type Option = store.Option

// WithPattern sets the glob pattern used to list and watch documents.
func WithPattern(pattern string) Option {
	return store.WithPattern(pattern)
}

// WithExtension sets the file extension appended to document IDs.
func WithExtension(ext string) Option {
	return store.WithExtension(ext)
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return store.WithLogger(logger)
}

// WithVersioning enables or disables version control (e.g. Git).
func WithVersioning(enabled bool) Option {
	return store.WithVersioning(enabled)
}

// WithCreate controls whether a missing root directory is created.
func WithCreate(create bool) Option {
	return store.WithCreate(create)
}

// --- Factory ---

// NewStore opens a document store rooted at path.
func NewStore(path string, schema *Schema, opts ...Option) (*Store, error) {
	return store.New(path, schema, opts...)
}

// LoadSchema reads a schema manifest from a YAML file.
func LoadSchema(path string) (*Schema, error) {
	return manifest.Load(path)
}
