package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"fromgen/internal/common"
)

// Diagnostic codes for malformed union shapes.
const (
	CodeNotAUnion    = "not-a-union"
	CodeBadMarker    = "bad-marker"
	CodeNotAStruct   = "not-a-struct"
	CodeUnitVariant  = "unit-variant"
	CodeMultiPayload = "multi-payload"
	CodeNamedPayload = "named-payload"
	CodeBadPayload   = "bad-payload"
	CodeDupPayload   = "dup-payload"
	CodeCtorConflict = "ctor-conflict"
)

// Diagnostics holds all diagnostic information from a scan.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Union identifies which annotated declaration this relates to (if any).
	Union string
	// Variant identifies which variant this relates to (if any).
	Variant string
	// Pos is the source position ("file:line:col") of the offending declaration.
	Pos string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, union, variant, pos string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Union:    union,
		Variant:  variant,
		Pos:      pos,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, union, variant, pos string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Union:    union,
		Variant:  variant,
		Pos:      pos,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string, e.g.
// "faults.go:12:2: [unit-variant] Fault: variant Empty has no payload".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos != "" {
		prefix = append(prefix, d.Pos+":")
	}

	var subject []string
	if d.Union != "" {
		subject = append(subject, d.Union)
	}

	if d.Variant != "" {
		subject = append(subject, d.Variant)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(subject) > 0 {
		msg = strings.Join(subject, ".") + ": " + msg
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}
