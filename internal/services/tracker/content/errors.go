package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContentValidation matches every *ValidationError via errors.Is.
var ErrContentValidation = errors.New("content validation failed")

// ValidationError reports a content record that cannot be loaded. Field is
// empty when the problem concerns the record as a whole (for example a
// reserved separator in a name).
type ValidationError struct {
	Kind   Kind
	File   string
	Area   string
	Item   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.File != "" {
		fmt.Fprintf(&b, "%s: ", e.File)
	}
	if e.Kind.Valid() {
		b.WriteString(strings.ToLower(e.Kind.String()))
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "area %q", e.Area)
	if e.Item != "" {
		fmt.Fprintf(&b, ": item %q", e.Item)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	return b.String()
}

// Is reports whether target is ErrContentValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrContentValidation
}

const (
	reasonMissing   = "required field missing"
	reasonDuplicate = "duplicate item name"
)

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: reasonMissing}
}

func invalidField(field string, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// withContext fills in whichever location fields the error does not carry yet.
func withContext(err error, kind Kind, area, item string) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	if !verr.Kind.Valid() {
		verr.Kind = kind
	}
	if verr.Area == "" {
		verr.Area = area
	}
	if verr.Item == "" {
		verr.Item = item
	}
	return verr
}
