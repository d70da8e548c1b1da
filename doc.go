// Package vellum is the Composition Root for the Vellum library.
//
// It re-exports the document model (pkg/docs), the schema manifest loader
// (pkg/manifest) and the file-backed store (pkg/store) behind one import
// path, so most programs only ever import this package.
//
// Philosophy:
//
// Vellum treats a directory of plain-text files as a typed record
// collection. Every document is headers plus body: the headers are
// declared up front in a schema and decoded into real types on open.
// Saving writes them back in one canonical form. The files stay
// human-editable; nothing in the format requires Vellum to read or
// write it.
//
// Features:
//
//   - **Declared Headers**: Fields carry a kind, validators and defaults; order is canonical.
//   - **Typed Access**: Get returns ints, times and tag lists, never raw strings.
//   - **Whole-Document Errors**: Construction and validation report every problem at once.
//   - **Canonical Rewrite**: Saving re-folds long headers and restores declaration order.
//   - **Versioned Store (FS + Git)**: Out-of-the-box persistence with commit-per-change.
//   - **Reactive**: Watch a store for external edits with debounced change events.
//
// Usage:
//
//	// Declare a schema with the builder
//	b := vellum.NewBuilder()
//	b.Text("title").Required()
//	b.AutoNow("updated")
//	schema := b.Schema()
//
//	// Open, edit and save a document
//	doc, err := schema.Open("notes/hello.txt")
//	doc.Set("title", "Hello")
//	err = doc.Save("")
package vellum
