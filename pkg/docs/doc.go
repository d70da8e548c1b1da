// Package docs implements the declarative document model: schemas made
// of ordered, typed fields, and documents that bind values to those
// fields and persist to folded-header text files.
//
// A schema is declared once with a Builder and shared by every document
// of that type:
//
//	b := docs.NewBuilder()
//	b.Text("title").Initial("Untitled")
//	b.Tags("tags")
//	b.Int("age")
//	schema := b.Schema()
//
// Fields hold identity (name, declaration order), a conversion kind,
// an optional static initial value, a required flag, validators and an
// optional computed default. Validation and construction never stop at
// the first problem; they aggregate everything found in one pass into a
// single *InvalidDocument.
//
// Documents serialize to the format implemented by pkg/headers: one
// "name: value" line per explicitly set field, in declaration order,
// folded at 72 columns, then a blank line and the free-text body.
// Values that only exist as computed defaults are never persisted.
package docs
