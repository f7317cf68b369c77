package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ksefkit/pkg/invoice"
)

func TestVatRate_Percentage(t *testing.T) {
	t.Parallel()

	t.Run("percentage bearing rates", func(t *testing.T) {
		for rate, want := range map[invoice.VatRate]int64{
			invoice.Rate23: 23,
			invoice.Rate22: 22,
			invoice.Rate8:  8,
			invoice.Rate7:  7,
			invoice.Rate5:  5,
			invoice.Rate4:  4,
			invoice.Rate3:  3,
		} {
			pct, ok := rate.Percentage()
			require.True(t, ok, "rate %s", rate)
			assert.Equal(t, want, pct.IntPart())
		}
	})

	t.Run("zero rates and special variants bear no percentage", func(t *testing.T) {
		for _, rate := range []invoice.VatRate{
			invoice.Rate0Domestic,
			invoice.Rate0IntraEU,
			invoice.Rate0Export,
			invoice.Exempt,
			invoice.ReverseCharge,
			invoice.NotSubjectToTaxI,
			invoice.NotSubjectToTaxII,
		} {
			_, ok := rate.Percentage()
			assert.False(t, ok, "rate %s", rate)
		}
	})
}

func TestVatRate_Fold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, invoice.Rate23, invoice.Rate22.Fold())
	assert.Equal(t, invoice.Rate8, invoice.Rate7.Fold())
	assert.Equal(t, invoice.Rate4, invoice.Rate3.Fold())

	for _, rate := range []invoice.VatRate{
		invoice.Rate23, invoice.Rate8, invoice.Rate5, invoice.Rate4,
		invoice.Rate0Domestic, invoice.Exempt, invoice.ReverseCharge,
	} {
		assert.Equal(t, rate, rate.Fold(), "rate %s folds to itself", rate)
	}
}
