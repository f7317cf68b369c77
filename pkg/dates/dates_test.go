package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ksefkit/pkg/dates"
)

// frozen pins "today" so every check is deterministic.
var frozen = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func frozenValidator() *dates.Validator {
	return &dates.Validator{Now: func() time.Time { return frozen }}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateIssueDate(t *testing.T) {
	t.Parallel()
	v := frozenValidator()

	t.Run("today is valid", func(t *testing.T) {
		res := v.ValidateIssueDate(day(2026, time.March, 15))
		assert.True(t, res.IsValid())
		assert.Empty(t, res.Warnings)
	})

	t.Run("tomorrow is an error", func(t *testing.T) {
		res := v.ValidateIssueDate(day(2026, time.March, 16))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, dates.CodeIssueFuture, res.Errors[0].Code)
	})

	t.Run("five years ago exactly is still fine", func(t *testing.T) {
		res := v.ValidateIssueDate(day(2021, time.March, 15))
		assert.True(t, res.IsValid())
		assert.Empty(t, res.Warnings)
	})

	t.Run("older than five years warns", func(t *testing.T) {
		res := v.ValidateIssueDate(day(2021, time.March, 14))
		assert.True(t, res.IsValid())
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, dates.CodeIssueStale, res.Warnings[0].Code)
	})

	t.Run("time of day does not matter", func(t *testing.T) {
		res := v.ValidateIssueDate(time.Date(2026, time.March, 15, 23, 59, 59, 0, time.UTC))
		assert.True(t, res.IsValid())
	})
}

func TestValidateSaleDate(t *testing.T) {
	t.Parallel()
	v := frozenValidator()

	t.Run("absent sale date is valid", func(t *testing.T) {
		issue := day(2026, time.March, 1)
		res := v.ValidateSaleDate(nil, &issue)
		assert.True(t, res.IsValid())
		assert.Empty(t, res.Warnings)
	})

	t.Run("future sale date is an error", func(t *testing.T) {
		sale := day(2026, time.April, 1)
		res := v.ValidateSaleDate(&sale, nil)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, dates.CodeSaleFuture, res.Errors[0].Code)
	})

	t.Run("thirty days after issue is the boundary", func(t *testing.T) {
		issue := day(2026, time.January, 1)
		onBoundary := day(2026, time.January, 31)
		res := v.ValidateSaleDate(&onBoundary, &issue)
		assert.Empty(t, res.Warnings)

		past := day(2026, time.February, 1)
		res = v.ValidateSaleDate(&past, &issue)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, dates.CodeSaleAfterIssue, res.Warnings[0].Code)
	})
}

func TestValidatePeriod(t *testing.T) {
	t.Parallel()
	v := frozenValidator()

	t.Run("ordinary month period is valid", func(t *testing.T) {
		res := v.ValidatePeriod(day(2026, time.February, 1), day(2026, time.February, 28))
		assert.True(t, res.IsValid())
		assert.Empty(t, res.Warnings)
	})

	t.Run("inverted period is an error", func(t *testing.T) {
		res := v.ValidatePeriod(day(2026, time.February, 28), day(2026, time.February, 1))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, dates.CodePeriodInverted, res.Errors[0].Code)
	})

	t.Run("end more than sixty days out warns", func(t *testing.T) {
		res := v.ValidatePeriod(day(2026, time.March, 1), day(2026, time.June, 1))
		assert.True(t, res.IsValid())
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, dates.CodePeriodFarFuture, res.Warnings[0].Code)
	})

	t.Run("span over a year warns", func(t *testing.T) {
		res := v.ValidatePeriod(day(2024, time.January, 1), day(2025, time.January, 15))
		assert.True(t, res.IsValid())
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, dates.CodePeriodTooLong, res.Warnings[0].Code)
	})

	t.Run("far future and long span can both warn", func(t *testing.T) {
		res := v.ValidatePeriod(day(2025, time.January, 1), day(2026, time.June, 1))
		assert.Len(t, res.Warnings, 2)
	})
}

func TestNewUsesSystemClock(t *testing.T) {
	t.Parallel()

	v := dates.New()
	res := v.ValidateIssueDate(time.Now().AddDate(0, 0, 1))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, dates.CodeIssueFuture, res.Errors[0].Code)
}
