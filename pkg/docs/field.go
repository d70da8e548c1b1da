package docs

import (
	"github.com/aretw0/vellum/pkg/validate"
)

// Validator checks one field value and returns an error describing the
// failure, or nil.
type Validator func(value any) error

// Defaulter computes a field's value from its owning document. It runs
// on every access while the field has no explicitly set value, so the
// result follows its input fields until an assignment pins it.
type Defaulter func(doc *Document) any

// Kind is the conversion capability of a field type.
type Kind interface {
	// Name identifies the kind in error messages and schema manifests.
	Name() string

	// Decode converts a string encoding, or an already-native value, to
	// the kind's native type. Decoding a native value returns it
	// unchanged; anything unparseable returns a *ConversionError.
	Decode(value any) (any, error)

	// Encode converts a native value to its canonical string encoding.
	Encode(value any) (string, error)
}

// PreSaver is implemented by kinds that adjust the document right
// before serialization, such as save-time stamping.
type PreSaver interface {
	PreSave(doc *Document, f *Field)
}

// Field declares one typed property of a document schema: identity,
// declaration order, conversion kind, static initial value, required
// flag, validators and an optional computed default. A Field belongs to
// the schema, never to a document; per-document state lives in the
// document's value map.
type Field struct {
	name       string
	ordinal    int
	kind       Kind
	initial    any
	required   bool
	validators []Validator
	defaulter  Defaulter
}

// NewField declares an unbound field of the given kind. The field gains
// its name and ordinal when added to a Builder.
func NewField(kind Kind) *Field {
	return &Field{kind: kind, ordinal: -1}
}

// Name returns the field name bound at registration ("" before that).
func (f *Field) Name() string { return f.name }

// Ordinal returns the field's declaration index (-1 before registration).
func (f *Field) Ordinal() int { return f.ordinal }

// Kind returns the field's conversion kind.
func (f *Field) Kind() Kind { return f.kind }

// Initial sets the static value bound when construction receives no
// argument for this field. It returns the field for chaining.
func (f *Field) Initial(v any) *Field {
	f.initial = v
	return f
}

// Required marks the field as required: validation fails when its
// current value resolves to nothing.
func (f *Field) Required() *Field {
	f.required = true
	return f
}

// Validator appends fn to the field's validators. Validators run in
// registration order and every failure is reported, not only the first.
func (f *Field) Validator(fn Validator) *Field {
	f.validators = append(f.validators, fn)
	return f
}

// Defaulter registers the function computing this field's value while
// no explicit value is set. The result is recomputed on every access
// and never persisted.
func (f *Field) Defaulter(fn Defaulter) *Field {
	f.defaulter = fn
	return f
}

// Get returns the field's current value on doc: the explicit value when
// one was assigned, else the defaulter's result, else nil.
func (f *Field) Get(doc *Document) any {
	if v, ok := doc.values[f.name]; ok {
		return v
	}
	if f.defaulter != nil {
		return f.defaulter(doc)
	}
	return nil
}

// Set assigns value to the field on doc, storing it verbatim. Setting
// nil clears the field back to unset.
func (f *Field) Set(doc *Document, value any) {
	if value == nil {
		delete(doc.values, f.name)
		return
	}
	doc.values[f.name] = value
}

// Validate runs the implicit required check and then every registered
// validator against value, collecting all failures in order.
func (f *Field) Validate(value any) []Problem {
	var problems []Problem
	if f.required {
		if err := validate.Required(value); err != nil {
			problems = append(problems, Problem{Field: f.name, Msg: err.Error()})
		}
	}
	for _, fn := range f.validators {
		if err := fn(value); err != nil {
			problems = append(problems, Problem{Field: f.name, Msg: err.Error()})
		}
	}
	return problems
}
