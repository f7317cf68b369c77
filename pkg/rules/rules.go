package rules

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/ksefkit/pkg/dates"
	"github.com/dmitrymomot/ksefkit/pkg/iban"
	"github.com/dmitrymomot/ksefkit/pkg/invoice"
	"github.com/dmitrymomot/ksefkit/pkg/nip"
	"github.com/dmitrymomot/ksefkit/pkg/validation"
)

// ErrNilInvoice is returned when ValidateInvoice is called without a
// document. A nil document is a contract violation, not a data problem.
var ErrNilInvoice = errors.New("rules: invoice is nil")

// Issue codes reported by this package. Codes produced by the delegated
// validators (NIP_*, IBAN_*, NRB_*, DATE_*) pass through unchanged.
const (
	CodeSellerMissing     = "SELLER_MISSING"
	CodeSellerNIPMissing  = "SELLER_NIP_MISSING"
	CodeSellerNameMissing = "SELLER_NAME_MISSING"
	CodeSellerNameTooLong = "SELLER_NAME_TOO_LONG"

	CodeBuyerMissing     = "BUYER_MISSING"
	CodeBuyerIDMissing   = "BUYER_ID_MISSING"
	CodeBuyerNameTooLong = "BUYER_NAME_TOO_LONG"

	CodeDataMissing             = "INV_DATA_MISSING"
	CodeNumberMissing           = "INV_NUMBER_MISSING"
	CodeIssueDateMissing        = "INV_ISSUE_DATE_MISSING"
	CodeNumberTooLong           = "INV_NUMBER_TOO_LONG"
	CodeSaleDateAndPeriod       = "INV_SALE_DATE_AND_PERIOD"
	CodeCorrectionReasonMissing = "INV_CORRECTION_REASON_MISSING"
	CodeCorrectionReasonTooLong = "INV_CORRECTION_REASON_TOO_LONG"
	CodeCorrectedRefMissing     = "INV_CORRECTED_REF_MISSING"
	CodeSummaryNetMismatch      = "INV_SUMMARY_NET_MISMATCH"
	CodeSummaryVatMismatch      = "INV_SUMMARY_VAT_MISMATCH"
	CodeTotalMismatch           = "INV_TOTAL_MISMATCH"

	CodeLineListEmpty       = "ITEM_LIST_EMPTY"
	CodeLineListTooLong     = "ITEM_LIST_TOO_LONG"
	CodeLineNumberInvalid   = "ITEM_LINE_NUMBER_INVALID"
	CodeLineNumberDuplicate = "ITEM_LINE_NUMBER_DUPLICATE"
	CodeLineNameMissing     = "ITEM_NAME_MISSING"
	CodeLineNameTooLong     = "ITEM_NAME_TOO_LONG"
	CodeLineUnitTooLong     = "ITEM_UNIT_TOO_LONG"
	CodeLineNoAmount        = "ITEM_NO_AMOUNT"
	CodeLineNetMismatch     = "ITEM_NET_MISMATCH"
	CodeLineVatMismatch     = "ITEM_VAT_MISMATCH"

	CodeAccountEmpty = "PAYMENT_ACCOUNT_EMPTY"
)

const (
	maxNameLength   = 512
	maxNumberLength = 256
	maxUnitLength   = 256
	maxLineCount    = 10000
)

// tolerance is the monetary delta below which two computed amounts are
// considered equal. Inclusive: a divergence of exactly 0.02 passes.
var tolerance = decimal.NewFromFloat(0.02)

// Option configures the validator.
type Option func(*Validator)

// WithClock injects the current-date source used by the date checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.dates.Now = now }
}

// Validator runs the business rules. Stateless apart from the injected clock;
// safe for concurrent use.
type Validator struct {
	dates *dates.Validator
}

// New returns a Validator using the system clock.
func New(opts ...Option) *Validator {
	v := &Validator{dates: dates.New()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateInvoice walks the document graph and returns the accumulated
// result. The only error condition is a nil document; every data problem
// becomes an issue on the result.
func (v *Validator) ValidateInvoice(inv *invoice.Invoice) (*validation.Result, error) {
	if inv == nil {
		return nil, ErrNilInvoice
	}

	res := validation.New()

	if inv.Seller == nil {
		res.AddError(CodeSellerMissing, "seller section is required", "Seller")
	} else {
		v.validateSeller(res, inv.Seller)
	}

	if inv.Buyer == nil {
		res.AddError(CodeBuyerMissing, "buyer section is required", "Buyer")
	} else {
		v.validateBuyer(res, inv.Buyer)
	}

	if inv.Data == nil {
		res.AddError(CodeDataMissing, "invoice data section is required", "InvoiceData")
		return res, nil
	}

	v.validateData(res, inv.Data)
	v.validateLines(res, inv.Data.Lines)
	v.reconcile(res, inv.Data)
	if inv.Data.Payment != nil {
		v.validatePayment(res, inv.Data.Payment)
	}
	return res, nil
}

func (v *Validator) validateSeller(res *validation.Result, seller *invoice.Party) {
	if seller.TaxID == "" {
		res.AddError(CodeSellerNIPMissing, "seller tax identifier is required", "Seller.TaxId")
	} else {
		res.Merge(nip.ValidateField(seller.TaxID, "Seller.TaxId"))
	}

	switch {
	case seller.Name == "":
		res.AddError(CodeSellerNameMissing, "seller name is required", "Seller.Name")
	case len(seller.Name) > maxNameLength:
		res.AddError(CodeSellerNameTooLong, "seller name exceeds 512 characters", "Seller.Name")
	}
}

func (v *Validator) validateBuyer(res *validation.Result, buyer *invoice.Party) {
	if buyer.TaxID == "" && buyer.EUVatID == "" && buyer.OtherID == "" && !buyer.NoIdentifier {
		res.AddError(CodeBuyerIDMissing, "buyer needs a tax identifier, an EU VAT id, another identifier, or the explicit no-identifier flag", "Buyer")
	}
	if buyer.TaxID != "" {
		res.Merge(nip.ValidateField(buyer.TaxID, "Buyer.TaxId"))
	}
	if len(buyer.Name) > maxNameLength {
		res.AddError(CodeBuyerNameTooLong, "buyer name exceeds 512 characters", "Buyer.Name")
	}
}

func (v *Validator) validateData(res *validation.Result, data *invoice.InvoiceData) {
	switch {
	case data.Number == "":
		res.AddError(CodeNumberMissing, "invoice number is required", "InvoiceData.Number")
	case len(data.Number) > maxNumberLength:
		res.AddError(CodeNumberTooLong, "invoice number exceeds 256 characters", "InvoiceData.Number")
	}

	var issueRef *time.Time
	if data.IssueDate.IsZero() {
		res.AddError(CodeIssueDateMissing, "issue date is required", "InvoiceData.IssueDate")
	} else {
		issueRef = &data.IssueDate
		res.Merge(v.dates.ValidateIssueDateField(data.IssueDate, "InvoiceData.IssueDate"))
	}
	res.Merge(v.dates.ValidateSaleDateField(data.SaleDate, issueRef, "InvoiceData.SaleDate"))

	if data.SaleDate != nil && data.SalePeriod != nil {
		res.AddWarning(CodeSaleDateAndPeriod, "both sale date and sale period are present", "InvoiceData.SaleDate")
	}
	if data.SalePeriod != nil {
		res.Merge(v.dates.ValidatePeriodField(data.SalePeriod.Start, data.SalePeriod.End, "InvoiceData.SalePeriod"))
	}

	if data.Type.IsCorrection() {
		reason := ""
		if data.Correction != nil {
			reason = data.Correction.Reason
		}
		switch {
		case reason == "":
			res.AddError(CodeCorrectionReasonMissing, "correction invoices require a correction reason", "InvoiceData.Correction.Reason")
		case len(reason) > maxNumberLength:
			res.AddError(CodeCorrectionReasonTooLong, "correction reason exceeds 256 characters", "InvoiceData.Correction.Reason")
		}
		if data.Correction == nil || data.Correction.Corrected == nil {
			res.AddError(CodeCorrectedRefMissing, "correction invoices must reference the corrected invoice", "InvoiceData.Correction.CorrectedInvoice")
		}
	}
}

func (v *Validator) validateLines(res *validation.Result, lines []invoice.LineItem) {
	if len(lines) == 0 {
		res.AddWarning(CodeLineListEmpty, "invoice has no line items", "InvoiceData.LineItems")
		return
	}
	if len(lines) > maxLineCount {
		res.AddError(CodeLineListTooLong, "invoice exceeds 10000 line items", "InvoiceData.LineItems")
	}

	seen := make(map[int]bool, len(lines))
	for i, line := range lines {
		path := func(field string) string {
			return fmt.Sprintf("InvoiceData.LineItems[%d].%s", i, field)
		}

		if line.LineNumber <= 0 {
			res.AddError(CodeLineNumberInvalid, "line number must be positive", path("LineNumber"))
		} else if seen[line.LineNumber] {
			res.AddError(CodeLineNumberDuplicate, "line number is duplicated", path("LineNumber"))
		} else {
			seen[line.LineNumber] = true
		}

		switch {
		case line.Name == "":
			res.AddError(CodeLineNameMissing, "product name is required", path("Name"))
		case len(line.Name) > maxNameLength:
			res.AddError(CodeLineNameTooLong, "product name exceeds 512 characters", path("Name"))
		}
		if len(line.Unit) > maxUnitLength {
			res.AddError(CodeLineUnitTooLong, "unit exceeds 256 characters", path("Unit"))
		}

		if line.NetAmount == nil && line.GrossAmount == nil {
			res.AddWarning(CodeLineNoAmount, "line has neither a net nor a gross amount", path("NetAmount"))
		}

		if line.Quantity != nil && line.UnitPrice != nil && line.NetAmount != nil {
			computed := line.Quantity.Mul(*line.UnitPrice)
			if diverges(computed, *line.NetAmount) {
				res.AddWarning(CodeLineNetMismatch, "quantity times unit price diverges from the net amount", path("NetAmount"))
			}
		}

		// Rate variants without a percentage (exempt, reverse charge, not
		// subject to tax, the 0% flavors) are exempt from recomputation.
		if pct, ok := line.Rate.Percentage(); ok && line.NetAmount != nil && line.VatAmount != nil {
			computed := line.NetAmount.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
			if diverges(computed, *line.VatAmount) {
				res.AddWarning(CodeLineVatMismatch, "net amount times rate diverges from the VAT amount", path("VatAmount"))
			}
		}
	}
}

// bucket is the per-rate accumulation used for header reconciliation.
type bucket struct {
	net decimal.Decimal
	vat decimal.Decimal
}

func (v *Validator) reconcile(res *validation.Result, data *invoice.InvoiceData) {
	sums := make(map[invoice.VatRate]*bucket)
	for _, line := range data.Lines {
		key := line.Rate.Fold()
		b, ok := sums[key]
		if !ok {
			b = &bucket{}
			sums[key] = b
		}
		if line.NetAmount != nil {
			b.net = b.net.Add(*line.NetAmount)
		}
		if line.VatAmount != nil {
			b.vat = b.vat.Add(*line.VatAmount)
		}
	}

	checks := []struct {
		rate     invoice.VatRate
		net, vat *decimal.Decimal
		netField string
		vatField string
	}{
		{invoice.Rate23, data.Summary.Net23, data.Summary.Vat23, "InvoiceData.Summary.Net23", "InvoiceData.Summary.Vat23"},
		{invoice.Rate8, data.Summary.Net8, data.Summary.Vat8, "InvoiceData.Summary.Net8", "InvoiceData.Summary.Vat8"},
		{invoice.Rate5, data.Summary.Net5, data.Summary.Vat5, "InvoiceData.Summary.Net5", "InvoiceData.Summary.Vat5"},
		{invoice.Rate4, data.Summary.Net4, data.Summary.Vat4, "InvoiceData.Summary.Net4", "InvoiceData.Summary.Vat4"},
	}
	for _, c := range checks {
		b := sums[c.rate]
		computedNet, computedVat := decimal.Zero, decimal.Zero
		if b != nil {
			computedNet, computedVat = b.net, b.vat
		}
		compareSummary(res, CodeSummaryNetMismatch, c.net, computedNet, c.netField)
		compareSummary(res, CodeSummaryVatMismatch, c.vat, computedVat, c.vatField)
	}

	if data.Summary.TotalNet != nil && data.Summary.TotalVat != nil && data.Summary.Total != nil {
		computed := data.Summary.TotalNet.Add(*data.Summary.TotalVat)
		if diverges(computed, *data.Summary.Total) {
			res.AddWarning(CodeTotalMismatch, "declared total diverges from total net plus total VAT", "InvoiceData.Summary.Total")
		}
	}
}

// compareSummary checks one declared header field against the computed line
// sum. An absent field counts as zero when lines produced a nonzero sum;
// when both sides are zero or absent the check is skipped.
func compareSummary(res *validation.Result, code string, declared *decimal.Decimal, computed decimal.Decimal, field string) {
	value := decimal.Zero
	if declared != nil {
		value = *declared
	}
	if declared == nil && computed.IsZero() {
		return
	}
	if diverges(value, computed) {
		res.AddWarning(code, "declared summary amount diverges from the line-item sum", field)
	}
}

func (v *Validator) validatePayment(res *validation.Result, payment *invoice.Payment) {
	validateAccounts := func(accounts []invoice.BankAccount, pathPrefix string) {
		for i, acc := range accounts {
			field := fmt.Sprintf("%s[%d]", pathPrefix, i)
			if acc.Number == "" {
				// An empty number inside a populated record signals an
				// incomplete entry, a harder failure than a typo.
				res.AddError(CodeAccountEmpty, "bank account number is empty", field)
				continue
			}
			res.Merge(iban.ValidateField(acc.Number, field))
		}
	}
	validateAccounts(payment.Accounts, "InvoiceData.Payment.BankAccounts")
	validateAccounts(payment.FactoringAccounts, "InvoiceData.Payment.FactoringAccounts")
}

func diverges(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().GreaterThan(tolerance)
}
