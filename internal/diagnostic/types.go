package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Codes reported while compiling or analyzing DTO schemas.
const (
	CodeNotStruct         = "not-struct"
	CodeUnregistered      = "unregistered"
	CodeDuplicateKey      = "duplicate-key"
	CodeUnknownKey        = "unknown-key"
	CodeOptionType        = "option-type"
	CodeElemNotSequence   = "elem-not-sequence"
	CodeElemMismatch      = "elem-mismatch"
	CodeAccessorSignature = "accessor-signature"
	CodeMutatorSignature  = "mutator-signature"
	CodeDirective         = "directive"
)

// Severity of a diagnostic.
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
		return "unknown"
	}
}

// Diagnostic is a single schema problem.
type Diagnostic struct {
	Severity Severity
	Code     string
	// Type is the DTO type the problem belongs to.
	Type string
	// Key is the plain-data key of the field, if any.
	Key     string
	Message string
}

// String formats the diagnostic as "Type.key: [code] message".
func (d Diagnostic) String() string {
	var where string

	switch {
	case d.Type != "" && d.Key != "":
		where = d.Type + "." + d.Key + ": "
	case d.Type != "":
		where = d.Type + ": "
	case d.Key != "":
		where = d.Key + ": "
	}

	return fmt.Sprintf("%s[%s] %s", where, d.Code, d.Message)
}

// Diagnostics collects errors and warnings.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Errorf records an error.
func (d *Diagnostics) Errorf(code, typ, key, format string, args ...any) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Type:     typ,
		Key:      key,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf records a warning.
func (d *Diagnostics) Warnf(code, typ, key, format string, args ...any) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Type:     typ,
		Key:      key,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends other's entries.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Err joins all errors into one, or returns nil.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}
