package docs

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/aretw0/vellum/pkg/headers"
)

// Open parses the header section of the file at path and constructs a
// document from it. Header values decode through each field's kind
// before binding; unknown header names surface as construction
// problems. The body stays on disk until the first Read call. Open does
// not validate; that stays an explicit call.
func (s *Schema) Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hs, err := headers.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	named := make(Values, len(hs))
	for _, h := range hs {
		field, ok := s.byName[h.Name]
		if !ok {
			// Left as-is so construction reports it with the rest.
			named[h.Name] = h.Value
			continue
		}
		value, err := field.kind.Decode(h.Value)
		if err != nil {
			return nil, fmt.Errorf("open %s: field %s: %w", path, h.Name, err)
		}
		named[h.Name] = value
	}

	doc, err := s.New(nil, named)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc.path = path
	doc.bodyLoaded = false
	return doc, nil
}

// Read returns the document body. Opened documents defer the body to
// disk: the first call scans the source file for everything after the
// first blank line and keeps it.
func (d *Document) Read() (string, error) {
	if d.bodyLoaded {
		return d.body, nil
	}

	f, err := os.Open(d.path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	body, err := headers.Body(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", d.path, err)
	}
	d.body = body
	d.bodyLoaded = true
	return d.body, nil
}

// Save serializes the document to path, or to its last known path when
// path is empty; with neither it returns ErrNoPath. Kinds with a
// pre-save hook run first, then every explicitly set field is emitted
// in declaration order (computed-only defaults are never persisted),
// folded at the format's column limit, followed by the body when one is
// present. The write is atomic, and on success the document's path
// points at the target.
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.path
	}
	if path == "" {
		return ErrNoPath
	}

	for _, f := range d.schema.fields {
		if ps, ok := f.kind.(PreSaver); ok {
			ps.PreSave(d, f)
		}
	}

	hs := make([]headers.Header, 0, len(d.schema.fields))
	for _, f := range d.schema.fields {
		value, ok := d.values[f.name]
		if !ok {
			continue
		}
		encoded, err := f.kind.Encode(value)
		if err != nil {
			return fmt.Errorf("save %s: field %s: %w", path, f.name, err)
		}
		hs = append(hs, headers.Header{Name: f.name, Value: encoded})
	}

	// The body must come off the old file before the target is replaced.
	body, err := d.Read()
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	data := headers.Encode(hs, body)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	d.path = path
	return nil
}
