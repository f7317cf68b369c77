package validation

import (
	"fmt"
	"strings"
)

// Severity distinguishes issues that make a document invalid from issues that
// are merely worth surfacing.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a single validation finding. It is a value object: two
// issues with equal fields are the same issue.
type Issue struct {
	// Code is a stable, machine-matchable identifier, e.g. "NIP_INVALID_CHECKSUM".
	Code string
	// Message is a human-readable description of the finding.
	Message string
	// Field is an optional dotted path into the document, e.g. "Seller.TaxId"
	// or "InvoiceData.LineItems[2].NetAmount". Empty when the finding is not
	// tied to a single field.
	Field string
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", i.Code, i.Message, i.Field)
}

// Result accumulates issues produced during one validation pass. The zero
// value is usable; New is provided for symmetry with the rest of the module.
type Result struct {
	Errors   []Issue
	Warnings []Issue
}

// New returns an empty Result.
func New() *Result {
	return &Result{}
}

// IsValid reports whether the pass produced no errors. Warnings do not affect
// validity.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError appends an error-severity issue.
func (r *Result) AddError(code, message, field string) {
	r.Errors = append(r.Errors, Issue{Code: code, Message: message, Field: field})
}

// AddWarning appends a warning-severity issue.
func (r *Result) AddWarning(code, message, field string) {
	r.Warnings = append(r.Warnings, Issue{Code: code, Message: message, Field: field})
}

// Add appends an issue with an explicit severity. Unknown severities are
// treated as errors so that a miscategorized finding can never silently pass
// a document.
func (r *Result) Add(sev Severity, issue Issue) {
	if sev == SeverityWarning {
		r.Warnings = append(r.Warnings, issue)
		return
	}
	r.Errors = append(r.Errors, issue)
}

// Merge appends another result's issues to this one, preserving order and
// keeping duplicates. Merging nil is a no-op. Not safe for concurrent use on
// the same target.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Len returns the total number of issues of both severities.
func (r *Result) Len() int {
	return len(r.Errors) + len(r.Warnings)
}

// HasCode reports whether any issue (error or warning) carries the given code.
func (r *Result) HasCode(code string) bool {
	for _, i := range r.Errors {
		if i.Code == code {
			return true
		}
	}
	for _, i := range r.Warnings {
		if i.Code == code {
			return true
		}
	}
	return false
}

// Get returns all issues recorded against the given field path, errors first.
func (r *Result) Get(field string) []Issue {
	var issues []Issue
	for _, i := range r.Errors {
		if i.Field == field {
			issues = append(issues, i)
		}
	}
	for _, i := range r.Warnings {
		if i.Field == field {
			issues = append(issues, i)
		}
	}
	return issues
}

// Fields returns the distinct non-empty field paths with at least one issue,
// in first-seen order.
func (r *Result) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, i := range append(append([]Issue{}, r.Errors...), r.Warnings...) {
		if i.Field == "" || seen[i.Field] {
			continue
		}
		fields = append(fields, i.Field)
		seen[i.Field] = true
	}
	return fields
}

// Error renders the result for logs and error wrapping. A valid result
// renders as "valid".
func (r *Result) Error() string {
	if r.IsValid() && len(r.Warnings) == 0 {
		return "valid"
	}

	var parts []string
	for _, i := range r.Errors {
		parts = append(parts, i.String())
	}
	for _, i := range r.Warnings {
		parts = append(parts, i.String()+" [warning]")
	}
	return strings.Join(parts, "; ")
}
