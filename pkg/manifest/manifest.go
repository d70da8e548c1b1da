// Package manifest loads document schemas from YAML files, so tools can
// work with document types declared as data instead of code:
//
//	fields:
//	  - name: title
//	    kind: text
//	    required: true
//	    initial: Untitled
//	  - name: tags
//	    kind: tags
//	    validators: [tags]
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/vellum/pkg/docs"
	"github.com/aretw0/vellum/pkg/validate"
)

// FieldDef is one field declaration in a manifest.
type FieldDef struct {
	Name       string   `yaml:"name"`
	Kind       string   `yaml:"kind"`
	Required   bool     `yaml:"required"`
	Initial    any      `yaml:"initial"`
	Validators []string `yaml:"validators"`
}

// File is the manifest document: an ordered list of field declarations.
type File struct {
	Fields []FieldDef `yaml:"fields"`
}

// kinds maps manifest kind names to field constructors.
var kinds = map[string]func() *docs.Field{
	"text":     docs.Text,
	"int":      docs.Int,
	"bool":     docs.Bool,
	"datetime": docs.DateTime,
	"autonow":  docs.AutoNow,
	"tags":     docs.Tags,
	"uuid":     docs.UUID,
	"autouuid": docs.AutoUUID,
}

// validators maps manifest validator names to predicates.
var validators = map[string]docs.Validator{
	"uuid": validate.UUID,
	"tags": validate.Tags,
}

// Load reads the manifest at path into a schema.
func Load(path string) (*docs.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	schema, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return schema, nil
}

// Parse decodes a manifest into a schema. Decoding is strict: unknown
// YAML keys, unknown kind names, and initial values the kind cannot
// decode are all errors, so a bad manifest fails before any document
// does. An omitted kind means text.
func Parse(r io.Reader) (*docs.Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if len(file.Fields) == 0 {
		return nil, fmt.Errorf("manifest declares no fields")
	}

	b := docs.NewBuilder()
	for _, def := range file.Fields {
		if def.Name == "" {
			return nil, fmt.Errorf("manifest field without a name")
		}

		kindName := def.Kind
		if kindName == "" {
			kindName = "text"
		}
		newField, ok := kinds[kindName]
		if !ok {
			return nil, fmt.Errorf("field %s: unknown kind %q (valid: %s)",
				def.Name, def.Kind, names(kinds))
		}

		f := b.Add(def.Name, newField())
		if def.Required {
			f.Required()
		}
		for _, v := range def.Validators {
			fn, ok := validators[v]
			if !ok {
				return nil, fmt.Errorf("field %s: unknown validator %q (valid: %s)",
					def.Name, v, names(validators))
			}
			f.Validator(fn)
		}
		if def.Initial != nil {
			value, err := f.Kind().Decode(def.Initial)
			if err != nil {
				return nil, fmt.Errorf("field %s: bad initial value: %w", def.Name, err)
			}
			f.Initial(value)
		}
	}

	return b.Schema(), nil
}

func names[V any](m map[string]V) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
