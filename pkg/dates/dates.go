// Package dates provides plausibility checks for invoice dates: issue date,
// sale date, and settlement periods. The checks are deliberately lenient:
// only impossible situations (future issue, inverted period) are errors, while
// unusual but legal ones (stale invoices, forward-looking periods) warn.
//
// The current-date source is injectable so callers can test against a frozen
// clock; every other input makes the checks pure functions.
package dates

import (
	"time"

	"github.com/dmitrymomot/ksefkit/pkg/validation"
)

// Issue codes reported by this package.
const (
	CodeIssueFuture     = "DATE_ISSUE_FUTURE"
	CodeIssueStale      = "DATE_ISSUE_STALE"
	CodeSaleFuture      = "DATE_SALE_FUTURE"
	CodeSaleAfterIssue  = "DATE_SALE_AFTER_ISSUE"
	CodePeriodInverted  = "DATE_PERIOD_INVERTED"
	CodePeriodFarFuture = "DATE_PERIOD_FAR_FUTURE"
	CodePeriodTooLong   = "DATE_PERIOD_TOO_LONG"
)

const (
	staleAfterYears     = 5
	saleLagDays         = 30
	periodLookaheadDays = 60
	periodMaxSpanDays   = 366
)

// Validator runs the date checks against an injectable clock.
type Validator struct {
	// Now returns the current time; defaults to time.Now. Comparisons are at
	// day granularity, so only the date component matters.
	Now func() time.Time
}

// New returns a Validator using the system clock.
func New() *Validator {
	return &Validator{Now: time.Now}
}

// ValidateIssueDate checks that the issue date is not in the future (error)
// and not older than five years (warning).
func (v *Validator) ValidateIssueDate(d time.Time) *validation.Result {
	return v.ValidateIssueDateField(d, "")
}

// ValidateIssueDateField is ValidateIssueDate with a field path on issues.
func (v *Validator) ValidateIssueDateField(d time.Time, field string) *validation.Result {
	res := validation.New()
	today := truncate(v.now())
	day := truncate(d)

	if day.After(today) {
		res.AddError(CodeIssueFuture, "issue date cannot be in the future", field)
	}
	if day.Before(today.AddDate(-staleAfterYears, 0, 0)) {
		res.AddWarning(CodeIssueStale, "issue date is more than 5 years old", field)
	}
	return res
}

// ValidateSaleDate checks an optional sale date against the clock and, when an
// issue date is also known, against the 30-day raise-before-delivery window.
// A nil sale date is valid.
func (v *Validator) ValidateSaleDate(sale, issue *time.Time) *validation.Result {
	return v.ValidateSaleDateField(sale, issue, "")
}

// ValidateSaleDateField is ValidateSaleDate with a field path on issues.
func (v *Validator) ValidateSaleDateField(sale, issue *time.Time, field string) *validation.Result {
	res := validation.New()
	if sale == nil {
		return res
	}

	today := truncate(v.now())
	saleDay := truncate(*sale)

	if saleDay.After(today) {
		res.AddError(CodeSaleFuture, "sale date cannot be in the future", field)
	}
	// Invoices may be raised before delivery, so a late sale date is unusual
	// rather than invalid.
	if issue != nil && saleDay.After(truncate(*issue).AddDate(0, 0, saleLagDays)) {
		res.AddWarning(CodeSaleAfterIssue, "sale date is more than 30 days after the issue date", field)
	}
	return res
}

// ValidatePeriod checks a settlement period: an inverted period is an error,
// a far-future end or an over-year span warns (continuous-service invoices
// legitimately project forward).
func (v *Validator) ValidatePeriod(start, end time.Time) *validation.Result {
	return v.ValidatePeriodField(start, end, "")
}

// ValidatePeriodField is ValidatePeriod with a field path on issues.
func (v *Validator) ValidatePeriodField(start, end time.Time, field string) *validation.Result {
	res := validation.New()
	today := truncate(v.now())
	startDay := truncate(start)
	endDay := truncate(end)

	if endDay.Before(startDay) {
		res.AddError(CodePeriodInverted, "period end date is before its start date", field)
		return res
	}
	if endDay.After(today.AddDate(0, 0, periodLookaheadDays)) {
		res.AddWarning(CodePeriodFarFuture, "period ends more than 60 days in the future", field)
	}
	if endDay.After(startDay.AddDate(0, 0, periodMaxSpanDays)) {
		res.AddWarning(CodePeriodTooLong, "period spans more than 366 days", field)
	}
	return res
}

func (v *Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
