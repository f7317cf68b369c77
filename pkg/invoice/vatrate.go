package invoice

import "github.com/shopspring/decimal"

// VatRate is the closed set of tax treatments a line item can carry: the
// current and legacy percentage rates, three flavors of 0%, and four variants
// that bear no percentage at all.
type VatRate string

const (
	Rate23        VatRate = "23"
	Rate22        VatRate = "22"
	Rate8         VatRate = "8"
	Rate7         VatRate = "7"
	Rate5         VatRate = "5"
	Rate4         VatRate = "4"
	Rate3         VatRate = "3"
	Rate0Domestic VatRate = "0"
	Rate0IntraEU  VatRate = "0 WDT"
	Rate0Export   VatRate = "0 EX"
	// Exempt marks a supply exempt from VAT ("zw").
	Exempt VatRate = "zw"
	// ReverseCharge shifts the tax obligation to the buyer ("oo").
	ReverseCharge VatRate = "oo"
	// NotSubjectToTaxI and NotSubjectToTaxII mark supplies outside the scope
	// of VAT ("np" article 100 / other).
	NotSubjectToTaxI  VatRate = "np I"
	NotSubjectToTaxII VatRate = "np II"
)

var ratePercentages = map[VatRate]decimal.Decimal{
	Rate23: decimal.NewFromInt(23),
	Rate22: decimal.NewFromInt(22),
	Rate8:  decimal.NewFromInt(8),
	Rate7:  decimal.NewFromInt(7),
	Rate5:  decimal.NewFromInt(5),
	Rate4:  decimal.NewFromInt(4),
	Rate3:  decimal.NewFromInt(3),
}

// Percentage returns the rate's percentage and true for percentage-bearing
// variants. The 0% flavors and the non-rate-bearing variants return false:
// they never participate in VAT-amount recomputation.
func (r VatRate) Percentage() (decimal.Decimal, bool) {
	pct, ok := ratePercentages[r]
	return pct, ok
}

// Fold maps legacy rates onto their modern successor bucket (22→23, 7→8,
// 3→4) for header reconciliation; every other rate folds to itself. The
// header only exposes summary fields for the current rate set, so legacy-rate
// lines are compared against the successor's fields.
func (r VatRate) Fold() VatRate {
	switch r {
	case Rate22:
		return Rate23
	case Rate7:
		return Rate8
	case Rate3:
		return Rate4
	default:
		return r
	}
}
