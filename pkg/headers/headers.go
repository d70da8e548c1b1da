// Package headers implements the folded-header text format backing
// vellum documents: an ordered run of "name: value" lines, long values
// continued on indented lines, terminated by the first blank line and
// followed by a free-form body.
//
// Folding breaks a logical line at single spaces only, so unfolding the
// physical lines (joining them with one space, dropping each
// continuation's leading indentation) reproduces the logical line
// exactly. A line containing only whitespace counts as blank and ends
// the header section.
package headers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	// Width is the column limit applied when folding a logical header line.
	Width = 72

	// Indent prefixes every continuation line produced by folding.
	Indent = "    "
)

// Header is one logical name/value pair of a document's header section.
type Header struct {
	Name  string
	Value string
}

// Parse reads the header section from r: every "name: value" line up to
// the first blank line or end of input, with continuation lines unfolded
// into their logical values. The body, if any, is left unread.
func Parse(r io.Reader) ([]Header, error) {
	var hs []Header

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			break
		}

		if raw[0] == ' ' || raw[0] == '\t' {
			if len(hs) == 0 {
				return nil, fmt.Errorf("line %d: continuation before any header", line)
			}
			last := &hs[len(hs)-1]
			chunk := strings.TrimLeft(raw, " \t")
			if last.Value == "" {
				last.Value = chunk
			} else {
				last.Value += " " + chunk
			}
			continue
		}

		name, rest, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: missing ':' in header", line)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("line %d: empty header name", line)
		}
		hs = append(hs, Header{Name: name, Value: strings.TrimLeft(rest, " \t")})
	}

	return hs, scanner.Err()
}

// Body skips the header section and returns everything after the first
// blank line, verbatim. Input without a blank line has no body.
func Body(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		if err == io.EOF {
			// A trailing fragment is a header line or noise, never a
			// separator; either way there is no body section.
			return "", nil
		}
		if strings.TrimSpace(line) == "" {
			rest, err := io.ReadAll(br)
			if err != nil {
				return "", err
			}
			return string(rest), nil
		}
	}
}

// Fold renders one logical header line as physical lines wrapped at
// Width columns. Breaks happen at word boundaries only (a word longer
// than the limit keeps its own overlong line) and continuation lines
// carry the Indent prefix, so unfolding restores the logical line.
func Fold(name, value string) []string {
	logical := name + ": " + value
	if utf8.RuneCountInString(logical) <= Width {
		return []string{logical}
	}

	words := atoms(logical)
	lines := make([]string, 0, 2)
	cur := words[0]
	width := utf8.RuneCountInString(cur)
	for _, w := range words[1:] {
		wlen := utf8.RuneCountInString(w)
		if width+1+wlen > Width {
			lines = append(lines, cur)
			cur = Indent + w
			width = len(Indent) + wlen
			continue
		}
		cur += " " + w
		width += 1 + wlen
	}
	return append(lines, cur)
}

// Unfold joins folded physical lines back into the logical line,
// replacing each line break and the continuation's leading indentation
// with a single space.
func Unfold(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	out := lines[0]
	for _, l := range lines[1:] {
		out += " " + strings.TrimLeft(l, " \t")
	}
	return out
}

// atoms splits s into units folding may not break apart. Runs of
// consecutive spaces bind to their neighbors, so every boundary between
// two atoms stands for exactly one space and rejoining is lossless.
func atoms(s string) []string {
	parts := strings.Split(s, " ")
	out := []string{parts[0]}
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" && parts[i-1] != "" {
			out = append(out, parts[i])
			continue
		}
		out[len(out)-1] += " " + parts[i]
	}
	return out
}

// Encode renders a complete document file: folded header lines, then,
// only when body is non-empty, one blank separator line and the body
// with a guaranteed trailing newline.
func Encode(hs []Header, body string) []byte {
	var buf bytes.Buffer
	for _, h := range hs {
		for _, line := range Fold(h.Name, h.Value) {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	if body != "" {
		buf.WriteByte('\n')
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
