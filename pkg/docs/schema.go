package docs

// Values holds keyword arguments for document construction, keyed by
// field name.
type Values map[string]any

// Builder collects field declarations in order and freezes them into a
// Schema. Declaring a name twice is last-write-wins: the earlier field
// is dropped and the new one takes a fresh ordinal at the end.
type Builder struct {
	fields []*Field
}

// NewBuilder starts an empty schema declaration.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add binds f to name, assigns its declaration ordinal and registers
// it. It returns f so validators and defaulters can chain off the
// declaration.
func (b *Builder) Add(name string, f *Field) *Field {
	for i, existing := range b.fields {
		if existing.name == name {
			b.fields = append(b.fields[:i], b.fields[i+1:]...)
			break
		}
	}
	f.name = name
	b.fields = append(b.fields, f)
	for i, field := range b.fields {
		field.ordinal = i
	}
	return f
}

// Text declares a text field under name, returning it for chaining.
// The remaining helpers do the same for the other kinds.
func (b *Builder) Text(name string) *Field { return b.Add(name, Text()) }

func (b *Builder) Int(name string) *Field      { return b.Add(name, Int()) }
func (b *Builder) Bool(name string) *Field     { return b.Add(name, Bool()) }
func (b *Builder) DateTime(name string) *Field { return b.Add(name, DateTime()) }
func (b *Builder) AutoNow(name string) *Field  { return b.Add(name, AutoNow()) }
func (b *Builder) Tags(name string) *Field     { return b.Add(name, Tags()) }
func (b *Builder) UUID(name string) *Field     { return b.Add(name, UUID()) }
func (b *Builder) AutoUUID(name string) *Field { return b.Add(name, AutoUUID()) }

// Schema freezes the declared fields into their final order.
func (b *Builder) Schema() *Schema {
	fields := make([]*Field, len(b.fields))
	copy(fields, b.fields)
	byName := make(map[string]*Field, len(fields))
	for _, f := range fields {
		byName[f.name] = f
	}
	return &Schema{fields: fields, byName: byName}
}

// Schema is the immutable ordered field list shared by every document
// of one type.
type Schema struct {
	fields []*Field
	byName map[string]*Field
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (*Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }
