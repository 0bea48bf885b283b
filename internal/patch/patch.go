// Package patch implements the controlled partial-update protocol: a payload
// declares exactly which fields it submitted, and each endpoint guards that set
// against its own forbidden-field policy before anything is merged. The field
// set is enumerated explicitly per payload type, never discovered by
// reflection, so the policy stays statically checkable.
package patch

import (
	"fmt"
	"sort"
	"strings"
)

// Fields records which field names a partial payload actually carried.
// Absent fields map to false (or are simply missing).
type Fields map[string]bool

// ForbiddenFieldError rejects the entire update; nothing is applied.
type ForbiddenFieldError struct {
	Fields []string
}

func (e *ForbiddenFieldError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("field %s cannot be updated through this endpoint", e.Fields[0])
	}
	return fmt.Sprintf("fields %s cannot be updated through this endpoint", strings.Join(e.Fields, ", "))
}

// RequiredFieldError reports a field the endpoint cannot operate without.
type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("field %s is required", e.Field)
}

// Guard fails the whole update when any submitted field is in the forbidden
// set. All offenders are named at once.
func Guard(submitted Fields, forbidden ...string) error {
	var hit []string
	for _, name := range forbidden {
		if submitted[name] {
			hit = append(hit, name)
		}
	}
	if len(hit) == 0 {
		return nil
	}
	sort.Strings(hit)
	return &ForbiddenFieldError{Fields: hit}
}

// Require fails when the named field was not submitted at all. A submitted
// false or zero value satisfies it; only absence is an error.
func Require(submitted Fields, field string) error {
	if !submitted[field] {
		return &RequiredFieldError{Field: field}
	}
	return nil
}
