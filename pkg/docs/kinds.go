package docs

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// now is swappable so tests can pin the save-time clock.
var now = time.Now

// Text declares a plain string field.
func Text() *Field { return NewField(textKind{}) }

// Int declares a base-10 integer field.
func Int() *Field { return NewField(intKind{}) }

// Bool declares a boolean field encoded as "true"/"false". Decoding
// also accepts t/yes/y/1 and f/no/n/0, case-insensitively.
func Bool() *Field { return NewField(boolKind{}) }

// DateTime declares a timestamp field encoded as "2006-01-02 15:04:05".
// Decoding also accepts minute and day precision.
func DateTime() *Field { return NewField(datetimeKind{}) }

// AutoNow declares a timestamp field stamped with the current time on
// every save.
func AutoNow() *Field { return NewField(autoNowKind{}) }

// Tags declares a flat list-of-tags field encoded as "one, two, three".
func Tags() *Field { return NewField(tagsKind{}) }

// UUID declares an identifier field holding the canonical lowercase
// hyphenated form.
func UUID() *Field { return NewField(uuidKind{}) }

// AutoUUID declares an identifier field that generates a random UUID on
// first save when none was assigned.
func AutoUUID() *Field { return NewField(autoUUIDKind{}) }

type textKind struct{}

func (textKind) Name() string { return "text" }

func (textKind) Decode(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, &ConversionError{Kind: "text", Value: v}
}

func (textKind) Encode(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

type intKind struct{}

func (intKind) Name() string { return "int" }

func (intKind) Decode(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return nil, &ConversionError{Kind: "int", Value: v}
		}
		return i, nil
	}
	return nil, &ConversionError{Kind: "int", Value: v}
}

func (intKind) Encode(v any) (string, error) {
	n, ok := v.(int)
	if !ok {
		return "", &ConversionError{Kind: "int", Value: v}
	}
	return strconv.Itoa(n), nil
}

type boolKind struct{}

func (boolKind) Name() string { return "bool" }

func (boolKind) Decode(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(b) {
		case "true", "t", "yes", "y", "1":
			return true, nil
		case "false", "f", "no", "n", "0":
			return false, nil
		}
	}
	return nil, &ConversionError{Kind: "bool", Value: v}
}

func (boolKind) Encode(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", &ConversionError{Kind: "bool", Value: v}
	}
	return strconv.FormatBool(b), nil
}

// datetimeLayouts are tried in order when decoding a timestamp string.
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

type datetimeKind struct{}

func (datetimeKind) Name() string { return "datetime" }

func (datetimeKind) Decode(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range datetimeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
	}
	return nil, &ConversionError{Kind: "datetime", Value: v}
}

func (datetimeKind) Encode(v any) (string, error) {
	t, ok := v.(time.Time)
	if !ok {
		return "", &ConversionError{Kind: "datetime", Value: v}
	}
	return t.Format(datetimeLayouts[0]), nil
}

type autoNowKind struct {
	datetimeKind
}

func (autoNowKind) PreSave(doc *Document, f *Field) {
	f.Set(doc, now())
}

type tagsKind struct{}

func (tagsKind) Name() string { return "tags" }

func (tagsKind) Decode(v any) (any, error) {
	switch t := v.(type) {
	case []string:
		return t, nil
	case []any:
		// YAML manifests decode sequences this way.
		tags := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, &ConversionError{Kind: "tags", Value: v}
			}
			tags = append(tags, s)
		}
		return tags, nil
	case string:
		parts := strings.Split(t, ",")
		tags := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				tags = append(tags, p)
			}
		}
		return tags, nil
	}
	return nil, &ConversionError{Kind: "tags", Value: v}
}

func (tagsKind) Encode(v any) (string, error) {
	tags, ok := v.([]string)
	if !ok {
		return "", &ConversionError{Kind: "tags", Value: v}
	}
	return strings.Join(tags, ", "), nil
}

type uuidKind struct{}

func (uuidKind) Name() string { return "uuid" }

func (uuidKind) Decode(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &ConversionError{Kind: "uuid", Value: v}
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, &ConversionError{Kind: "uuid", Value: v}
	}
	return id.String(), nil
}

func (uuidKind) Encode(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &ConversionError{Kind: "uuid", Value: v}
	}
	return s, nil
}

type autoUUIDKind struct {
	uuidKind
}

func (autoUUIDKind) PreSave(doc *Document, f *Field) {
	if !doc.IsSet(f.name) {
		f.Set(doc, uuid.NewString())
	}
}
