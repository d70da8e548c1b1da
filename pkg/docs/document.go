package docs

import (
	"fmt"
	"sort"
)

// Document is one instance of a schema: a value per set field plus a
// free-form text body, persistable to a folded-header text file.
//
// A Document is not safe for concurrent use.
type Document struct {
	schema *Schema
	values map[string]any
	path   string

	body       string
	bodyLoaded bool
}

// New constructs a document, binding positional arguments to fields in
// declaration order and named arguments by field name. Fields bound
// neither way take their static initial value, or stay unset. Binding
// problems (too many positional arguments, names matching no field, a
// field bound both ways) are all collected into one *InvalidDocument;
// construction never partially succeeds.
func (s *Schema) New(positional []any, named Values) (*Document, error) {
	var problems []Problem

	if len(positional) > len(s.fields) {
		problems = append(problems, Problem{
			Msg: fmt.Sprintf("too many positional arguments: at most %d (got %d)", len(s.fields), len(positional)),
		})
	}

	unknown := make([]string, 0, len(named))
	for name := range named {
		if _, ok := s.byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		problems = append(problems, Problem{Msg: "no such field: " + name})
	}

	for i, f := range s.fields {
		if i >= len(positional) {
			break
		}
		if _, ok := named[f.name]; ok {
			problems = append(problems, Problem{
				Msg: "value supplied both positionally and by keyword for field: " + f.name,
			})
		}
	}

	if len(problems) > 0 {
		return nil, &InvalidDocument{Problems: problems}
	}

	doc := &Document{
		schema:     s,
		values:     make(map[string]any, len(s.fields)),
		bodyLoaded: true,
	}
	for i, f := range s.fields {
		value := f.initial
		if i < len(positional) {
			value = positional[i]
		} else if v, ok := named[f.name]; ok {
			value = v
		}
		f.Set(doc, value)
	}
	return doc, nil
}

// Schema returns the document's schema.
func (d *Document) Schema() *Schema { return d.schema }

// Path returns the file the document was last opened from or saved to
// ("" for documents that never touched disk).
func (d *Document) Path() string { return d.path }

// Get returns the current value of the named field: the explicit value
// when one was assigned, else the field defaulter's result (recomputed
// on every call), else nil. Unknown names return nil.
func (d *Document) Get(name string) any {
	f, ok := d.schema.Field(name)
	if !ok {
		return nil
	}
	return f.Get(d)
}

// Set assigns value to the named field, storing it verbatim. Setting
// nil clears the field back to unset.
func (d *Document) Set(name string, value any) error {
	f, ok := d.schema.Field(name)
	if !ok {
		return fmt.Errorf("no such field: %s", name)
	}
	f.Set(d, value)
	return nil
}

// IsSet reports whether the named field holds an explicitly assigned
// value. Computed defaults do not count.
func (d *Document) IsSet(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Write replaces the document body.
func (d *Document) Write(text string) {
	d.body = text
	d.bodyLoaded = true
}

// Validate checks every field in declaration order against its current
// value (the same resolution Get uses), aggregating all failures into
// one *InvalidDocument: field order first, validator registration order
// within a field. A clean document returns nil.
func (d *Document) Validate() error {
	var problems []Problem
	for _, f := range d.schema.fields {
		problems = append(problems, f.Validate(f.Get(d))...)
	}
	if len(problems) > 0 {
		return &InvalidDocument{Problems: problems}
	}
	return nil
}
