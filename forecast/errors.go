package forecast

import (
	"fmt"
	"strings"
)

// ValidationError reports a request field that failed validation. It is
// raised before any network call and is always recoverable by correcting
// the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UnknownModelError reports a model token that no normalization rule
// matched. Valid carries the full canonical model set.
type UnknownModelError struct {
	Input string
	Valid []Model
}

func (e *UnknownModelError) Error() string {
	names := make([]string, len(e.Valid))
	for i, m := range e.Valid {
		names[i] = string(m)
	}
	return fmt.Sprintf("unknown model %q, valid models: %s", e.Input, strings.Join(names, ", "))
}

// LookupError reports a failed clean-name lookup on a response. RawKey is
// set when the caller passed a raw parameter-level key where a clean name
// was expected.
type LookupError struct {
	Name      string
	Available []string
	RawKey    bool
}

func (e *LookupError) Error() string {
	if e.RawKey {
		return fmt.Sprintf("%q is a raw parameter-level key; use Response.Data(%q) for raw access, or look up the clean parameter name", e.Name, e.Name)
	}
	return fmt.Sprintf("parameter %q not found, available parameters are: [%s]", e.Name, strings.Join(e.Available, ", "))
}
