package gateway

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound maps the personnel API's 404 for single-record lookups.
	ErrNotFound = errors.New("record not found")
)

// ValidationError carries the personnel API's field-level messages verbatim.
// Every message must reach the user individually, so the map keeps the
// one-to-many shape of the wire format.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Messages flattens the per-field errors in stable field order.
func (e *ValidationError) Messages() []string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []string
	for _, f := range fields {
		out = append(out, e.Fields[f]...)
	}
	return out
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
