package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// XML namespaces identifying the supported schema versions. The namespace on
// the root element is the format's de-facto version marker.
const (
	NamespaceFA2 = "http://crd.gov.pl/wzor/2023/06/29/12648/"
	NamespaceFA3 = "http://crd.gov.pl/wzor/2025/06/25/13775/"
)

// Invoice is the document under validation.
type Invoice struct {
	Header       Header
	Seller       *Party
	Buyer        *Party
	ThirdParties []ThirdParty
	Data         *InvoiceData
}

// Header carries document-level metadata outside the invoice body.
type Header struct {
	// SystemInfo names the system that produced the document.
	SystemInfo string
}

// Party identifies a seller, buyer, or third party. A buyer may legitimately
// carry no identifier at all, which is stated explicitly via NoIdentifier.
type Party struct {
	TaxID          string
	EUVatID        string
	EUVatCountry   string
	OtherID        string
	OtherIDCountry string
	NoIdentifier   bool
	Name           string
	Address        string
}

// ThirdPartyRole is the closed set of roles a third party can play on an
// invoice.
type ThirdPartyRole string

const (
	RoleFactor            ThirdPartyRole = "factor"
	RoleRecipient         ThirdPartyRole = "recipient"
	RoleAdditionalBuyer   ThirdPartyRole = "additional_buyer"
	RolePayer             ThirdPartyRole = "payer"
	RoleOriginalEntity    ThirdPartyRole = "original_entity"
	RoleInvoiceIssuer     ThirdPartyRole = "invoice_issuer"
	RoleLocalGovIssuer    ThirdPartyRole = "local_gov_issuer"
	RoleLocalGovRecipient ThirdPartyRole = "local_gov_recipient"
	RoleVatGroupIssuer    ThirdPartyRole = "vat_group_issuer"
	RoleVatGroupRecipient ThirdPartyRole = "vat_group_recipient"
	RoleEmployee          ThirdPartyRole = "employee"
)

// ThirdParty is a party with a role variant. SharePercent is populated only
// for additional buyers holding a share of the purchase.
type ThirdParty struct {
	Party
	Role         ThirdPartyRole
	SharePercent *decimal.Decimal
}

// InvoiceType is the document kind; correction kinds require a correction
// block.
type InvoiceType string

const (
	TypeVAT                  InvoiceType = "VAT"
	TypeCorrection           InvoiceType = "KOR"
	TypeAdvance              InvoiceType = "ZAL"
	TypeSettlement           InvoiceType = "ROZ"
	TypeSimplified           InvoiceType = "UPR"
	TypeCorrectionAdvance    InvoiceType = "KOR_ZAL"
	TypeCorrectionSettlement InvoiceType = "KOR_ROZ"
)

// IsCorrection reports whether the type requires a correction block.
func (t InvoiceType) IsCorrection() bool {
	return t == TypeCorrection || t == TypeCorrectionAdvance || t == TypeCorrectionSettlement
}

// Period is a settlement period for continuous services.
type Period struct {
	Start time.Time
	End   time.Time
}

// InvoiceData is the invoice body: identification, dates, lines, summary, and
// the optional payment and correction blocks.
type InvoiceData struct {
	Number     string
	Currency   string
	IssueDate  time.Time
	SaleDate   *time.Time
	SalePeriod *Period
	Type       InvoiceType
	Lines      []LineItem
	Summary    Summary
	Payment    *Payment
	Correction *Correction
}

// LineItem is a single invoice line. All amounts are optional; the business
// rules decide which combinations are anomalous.
type LineItem struct {
	LineNumber  int
	Name        string
	Unit        string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	Discount    *decimal.Decimal
	NetAmount   *decimal.Decimal
	GrossAmount *decimal.Decimal
	VatAmount   *decimal.Decimal
	Rate        VatRate
	GTU         string
	PKWiU       string
}

// Summary holds the per-rate and grand-total amounts declared in the invoice
// header. Only the current rate set has summary fields; legacy-rate lines are
// folded into the current buckets during reconciliation.
type Summary struct {
	Net23        *decimal.Decimal
	Vat23        *decimal.Decimal
	Net8         *decimal.Decimal
	Vat8         *decimal.Decimal
	Net5         *decimal.Decimal
	Vat5         *decimal.Decimal
	Net4         *decimal.Decimal
	Vat4         *decimal.Decimal
	Net0Domestic *decimal.Decimal
	Net0IntraEU  *decimal.Decimal
	Net0Export   *decimal.Decimal
	NetExempt    *decimal.Decimal
	TotalNet     *decimal.Decimal
	TotalVat     *decimal.Decimal
	Total        *decimal.Decimal
}

// PaymentForm is the declared settlement method.
type PaymentForm string

const (
	PaymentCash     PaymentForm = "cash"
	PaymentCard     PaymentForm = "card"
	PaymentTransfer PaymentForm = "transfer"
	PaymentVoucher  PaymentForm = "voucher"
	PaymentCheque   PaymentForm = "cheque"
	PaymentCredit   PaymentForm = "credit"
	PaymentMobile   PaymentForm = "mobile"
)

// BankAccount is a payment destination. Factoring accounts are kept separate
// because they belong to the factor, not the seller.
type BankAccount struct {
	Number      string
	BankName    string
	Description string
}

// Payment is the optional payment block.
type Payment struct {
	Accounts          []BankAccount
	FactoringAccounts []BankAccount
	DueDate           *time.Time
	Form              PaymentForm
}

// CorrectedRef points at the invoice being corrected.
type CorrectedRef struct {
	Number     string
	IssueDate  time.Time
	KSeFNumber string
}

// Correction is required on correction-type invoices.
type Correction struct {
	Reason    string
	Corrected *CorrectedRef
}
