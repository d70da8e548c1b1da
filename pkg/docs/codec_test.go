package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personSchema() *Schema {
	b := NewBuilder()
	b.Text("name").Required()
	b.Int("age")
	b.DateTime("joined")
	b.Tags("tags")
	b.UUID("id")
	return b.Schema()
}

func TestSaveExactBytes(t *testing.T) {
	b := NewBuilder()
	b.Text("foo")
	b.Text("bar")
	schema := b.Schema()

	doc, err := schema.New(nil, Values{"foo": "bar", "bar": "foo"})
	require.NoError(t, err)
	doc.Write("x\ny")

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, doc.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "foo: bar\nbar: foo\n\nx\ny\n", string(data))
}

func TestSaveSkipsUnsetFields(t *testing.T) {
	b := NewBuilder()
	b.Text("title")
	b.Text("url").Defaulter(func(d *Document) any {
		title, _ := d.Get("title").(string)
		return strings.ToLower(title)
	})
	schema := b.Schema()

	doc, err := schema.New(nil, Values{"title": "Hello"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, doc.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title: Hello\n", string(data),
		"computed defaults must not be persisted")
}

func TestSaveEmptyDocument(t *testing.T) {
	b := NewBuilder()
	b.Text("title").Defaulter(func(*Document) any { return "always computed" })
	schema := b.Schema()

	doc, err := schema.New(nil, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, doc.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data, "nothing set and no body means an empty file")
}

func TestSaveWithoutPath(t *testing.T) {
	schema := personSchema()
	doc, err := schema.New(nil, Values{"name": "John"})
	require.NoError(t, err)

	err = doc.Save("")
	assert.ErrorIs(t, err, ErrNoPath)
	assert.Empty(t, doc.Path())
}

func TestSaveRemembersPath(t *testing.T) {
	schema := personSchema()
	doc, err := schema.New(nil, Values{"name": "John"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "john.txt")
	require.NoError(t, doc.Save(path))
	assert.Equal(t, path, doc.Path())

	// An empty path now means "same file again".
	require.NoError(t, doc.Set("name", "John Q."))
	require.NoError(t, doc.Save(""))

	reopened, err := schema.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "John Q.", reopened.Get("name"))
}

func TestOpenDecodesThroughKinds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "john.txt")
	content := "name: John Doe\n" +
		"age: 42\n" +
		"joined: 2024-03-01 09:30:00\n" +
		"tags: staff, new\n" +
		"id: D8371B26-0F3E-4A51-9A4C-8CFB13B0F2A7\n" +
		"\n" +
		"Hello, John!\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	schema := personSchema()
	doc, err := schema.Open(path)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", doc.Get("name"))
	assert.Equal(t, 42, doc.Get("age"))

	joined, ok := doc.Get("joined").(time.Time)
	require.True(t, ok, "joined should decode to time.Time, got %T", doc.Get("joined"))
	assert.True(t, joined.Equal(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)))

	if diff := cmp.Diff([]string{"staff", "new"}, doc.Get("tags")); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "d8371b26-0f3e-4a51-9a4c-8cfb13b0f2a7", doc.Get("id"),
		"uuid headers canonicalize on open")

	body, err := doc.Read()
	require.NoError(t, err)
	assert.Equal(t, "Hello, John!\n", body)
	assert.Equal(t, path, doc.Path())
}

func TestOpenUnknownHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("name: John\nbogus: x\n"), 0o644))

	_, err := personSchema().Open(path)
	var invalid *InvalidDocument
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Problems, 1)
	assert.Equal(t, "no such field: bogus", invalid.Problems[0].Msg)
}

func TestOpenConversionFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("name: John\nage: not-a-number\n"), 0o644))

	_, err := personSchema().Open(path)
	var conv *ConversionError
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, "int", conv.Kind)
	assert.Contains(t, err.Error(), "field age")
}

func TestOpenDuplicateHeaderLastWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("age: 1\nage: 2\n"), 0o644))

	doc, err := personSchema().Open(path)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Get("age"))
}

func TestOpenDoesNotValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("age: 99\n"), 0o644))

	// "name" is required but absent; opening still succeeds.
	doc, err := personSchema().Open(path)
	require.NoError(t, err)

	var invalid *InvalidDocument
	require.ErrorAs(t, doc.Validate(), &invalid)
	assert.Equal(t, "name", invalid.Problems[0].Field)
}

func TestOpenDefersBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("name: John\n\nbody text\n"), 0o644))

	doc, err := personSchema().Open(path)
	require.NoError(t, err)
	assert.False(t, doc.bodyLoaded, "body should stay on disk until Read")

	body, err := doc.Read()
	require.NoError(t, err)
	assert.Equal(t, "body text\n", body)
	assert.True(t, doc.bodyLoaded)

	// Once loaded, the file can disappear without breaking Read.
	require.NoError(t, os.Remove(path))
	body, err = doc.Read()
	require.NoError(t, err)
	assert.Equal(t, "body text\n", body)
}

func TestSaveCarriesUnreadBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("name: John\n\nkeep me\n"), 0o644))

	schema := personSchema()
	doc, err := schema.Open(path)
	require.NoError(t, err)

	// Rewrite in place without ever touching the body explicitly.
	require.NoError(t, doc.Set("age", 30))
	require.NoError(t, doc.Save(""))

	reopened, err := schema.Open(path)
	require.NoError(t, err)
	body, err := reopened.Read()
	require.NoError(t, err)
	assert.Equal(t, "keep me\n", body)
	assert.Equal(t, 30, reopened.Get("age"))
}

func TestSaveRewritesCanonically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	// Headers out of declaration order, with scruffy spacing.
	require.NoError(t, os.WriteFile(path, []byte("age:   42\nname: John\n"), 0o644))

	schema := personSchema()
	doc, err := schema.Open(path)
	require.NoError(t, err)
	require.NoError(t, doc.Save(""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name: John\nage: 42\n", string(data))
}

func TestSaveFoldsAndReopens(t *testing.T) {
	long := "The quick brown fox jumps over the lazy dog, then circles back " +
		"around the yard twice more before finally settling into the shade " +
		"beside the porch for the rest of the afternoon."

	b := NewBuilder()
	b.Text("summary")
	schema := b.Schema()

	doc, err := schema.New(nil, Values{"summary": long})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, doc.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Greater(t, len(lines), 1, "a long value must fold")
	for i, line := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 72, "line %d too wide: %q", i, line)
		if i > 0 {
			assert.True(t, strings.HasPrefix(line, "    "), "continuation %d not indented: %q", i, line)
		}
	}

	reopened, err := schema.Open(path)
	require.NoError(t, err)
	assert.Equal(t, long, reopened.Get("summary"))
}

func TestAutoNowStampsEverySave(t *testing.T) {
	fixed := time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)
	restore := now
	now = func() time.Time { return fixed }
	defer func() { now = restore }()

	b := NewBuilder()
	b.Text("title")
	b.AutoNow("updated")
	schema := b.Schema()

	doc, err := schema.New(nil, Values{"title": "Note"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, doc.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title: Note\nupdated: 2026-08-22 12:00:00\n", string(data))

	// The clock moves, the next save restamps.
	now = func() time.Time { return fixed.Add(time.Hour) }
	require.NoError(t, doc.Save(""))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title: Note\nupdated: 2026-08-22 13:00:00\n", string(data))
}

func TestAutoUUIDStableAcrossSaves(t *testing.T) {
	b := NewBuilder()
	b.AutoUUID("id")
	b.Text("title")
	schema := b.Schema()

	doc, err := schema.New(nil, Values{"title": "Note"})
	require.NoError(t, err)
	assert.False(t, doc.IsSet("id"))

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, doc.Save(path))

	first, ok := doc.Get("id").(string)
	require.True(t, ok)
	require.NotEmpty(t, first)

	require.NoError(t, doc.Save(""))
	assert.Equal(t, first, doc.Get("id"), "an assigned id must survive later saves")

	reopened, err := schema.Open(path)
	require.NoError(t, err)
	assert.Equal(t, first, reopened.Get("id"))
	assert.True(t, reopened.IsSet("id"))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := personSchema().Open(filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
