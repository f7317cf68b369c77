package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ksefkit/pkg/validation"
)

func TestResult_IsValid(t *testing.T) {
	t.Parallel()

	t.Run("empty result is valid", func(t *testing.T) {
		res := validation.New()
		assert.True(t, res.IsValid())
		assert.Equal(t, 0, res.Len())
	})

	t.Run("warnings do not affect validity", func(t *testing.T) {
		res := validation.New()
		res.AddWarning("DATE_ISSUE_STALE", "old invoice", "InvoiceData.IssueDate")
		assert.True(t, res.IsValid())
		assert.Equal(t, 1, res.Len())
	})

	t.Run("a single error invalidates", func(t *testing.T) {
		res := validation.New()
		res.AddError("NIP_EMPTY", "tax identifier is required", "Seller.TaxId")
		assert.False(t, res.IsValid())
	})
}

func TestResult_Merge(t *testing.T) {
	t.Parallel()

	t.Run("appends preserving order without dedupe", func(t *testing.T) {
		a := validation.New()
		a.AddError("A", "first", "")
		a.AddWarning("W1", "warn", "")

		b := validation.New()
		b.AddError("B", "second", "")
		b.AddError("A", "first", "")

		a.Merge(b)
		require.Len(t, a.Errors, 3)
		assert.Equal(t, "A", a.Errors[0].Code)
		assert.Equal(t, "B", a.Errors[1].Code)
		assert.Equal(t, "A", a.Errors[2].Code)
		assert.Len(t, a.Warnings, 1)
	})

	t.Run("merging nil is a no-op", func(t *testing.T) {
		res := validation.New()
		res.AddError("A", "first", "")
		res.Merge(nil)
		assert.Len(t, res.Errors, 1)
	})
}

func TestResult_Lookups(t *testing.T) {
	t.Parallel()

	res := validation.New()
	res.AddError("SELLER_NAME_MISSING", "seller name is required", "Seller.Name")
	res.AddWarning("ITEM_NET_MISMATCH", "net diverges", "InvoiceData.LineItems[0].NetAmount")
	res.AddWarning("ITEM_NET_MISMATCH", "net diverges", "InvoiceData.LineItems[2].NetAmount")

	t.Run("HasCode sees both severities", func(t *testing.T) {
		assert.True(t, res.HasCode("SELLER_NAME_MISSING"))
		assert.True(t, res.HasCode("ITEM_NET_MISMATCH"))
		assert.False(t, res.HasCode("NIP_EMPTY"))
	})

	t.Run("Get returns issues for one field", func(t *testing.T) {
		issues := res.Get("InvoiceData.LineItems[2].NetAmount")
		require.Len(t, issues, 1)
		assert.Equal(t, "ITEM_NET_MISMATCH", issues[0].Code)
	})

	t.Run("Fields lists distinct paths in first-seen order", func(t *testing.T) {
		assert.Equal(t, []string{
			"Seller.Name",
			"InvoiceData.LineItems[0].NetAmount",
			"InvoiceData.LineItems[2].NetAmount",
		}, res.Fields())
	})
}

func TestResult_Error(t *testing.T) {
	t.Parallel()

	t.Run("valid result renders as valid", func(t *testing.T) {
		assert.Equal(t, "valid", validation.New().Error())
	})

	t.Run("issues render with code, message, and field", func(t *testing.T) {
		res := validation.New()
		res.AddError("NIP_EMPTY", "tax identifier is required", "Seller.TaxId")
		res.AddWarning("ITEM_LIST_EMPTY", "invoice has no line items", "")

		msg := res.Error()
		assert.Contains(t, msg, "NIP_EMPTY: tax identifier is required (Seller.TaxId)")
		assert.Contains(t, msg, "ITEM_LIST_EMPTY: invoice has no line items [warning]")
	})
}
