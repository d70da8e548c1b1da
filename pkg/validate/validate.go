// Package validate provides the predicate functions shared by document
// field declarations. Each validator checks one value and returns an
// error describing the failure, or nil; fields collect every failure
// rather than stopping at the first.
package validate

import (
	"fmt"
	"regexp"
)

var (
	// uuidPattern matches the canonical lowercase hyphenated form.
	uuidPattern = regexp.MustCompile(`^[a-f0-9]{8}-([a-f0-9]{4}-){3}[a-f0-9]{12}$`)

	tagPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// Required fails when no value is set.
func Required(value any) error {
	if value == nil {
		return fmt.Errorf("value is required")
	}
	return nil
}

// UUID fails unless value is a string in the canonical 8-4-4-4-12
// lowercase hexadecimal form. A nil value passes; absence is enforced
// with Required.
func UUID(value any) error {
	if value == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok || !uuidPattern.MatchString(s) {
		return fmt.Errorf("%v is not a valid uuid", value)
	}
	return nil
}

// Tags fails unless value is a list of strings, each made of
// alphanumerics and dashes only. A nil value passes; absence is
// enforced with Required.
func Tags(value any) error {
	if value == nil {
		return nil
	}
	tags, ok := value.([]string)
	if !ok {
		return fmt.Errorf("%v is not a tag list", value)
	}
	for _, tag := range tags {
		if !tagPattern.MatchString(tag) {
			return fmt.Errorf("%q is not a valid tag", tag)
		}
	}
	return nil
}
