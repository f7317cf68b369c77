package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Builder assembles an Invoice fluently. It enforces nothing: the resulting
// document still has to pass the validators, which keeps the builder honest
// about half-finished input in tests.
type Builder struct {
	inv Invoice
}

// NewBuilder starts an empty invoice with a populated data block.
func NewBuilder() *Builder {
	return &Builder{inv: Invoice{Data: &InvoiceData{Type: TypeVAT}}}
}

func (b *Builder) SystemInfo(info string) *Builder {
	b.inv.Header.SystemInfo = info
	return b
}

func (b *Builder) Seller(nip, name, address string) *Builder {
	b.inv.Seller = &Party{TaxID: nip, Name: name, Address: address}
	return b
}

func (b *Builder) Buyer(p Party) *Builder {
	buyer := p
	b.inv.Buyer = &buyer
	return b
}

func (b *Builder) ThirdParty(tp ThirdParty) *Builder {
	b.inv.ThirdParties = append(b.inv.ThirdParties, tp)
	return b
}

func (b *Builder) Number(number string) *Builder {
	b.inv.Data.Number = number
	return b
}

func (b *Builder) Currency(code string) *Builder {
	b.inv.Data.Currency = code
	return b
}

func (b *Builder) Type(t InvoiceType) *Builder {
	b.inv.Data.Type = t
	return b
}

func (b *Builder) IssueDate(d time.Time) *Builder {
	b.inv.Data.IssueDate = d
	return b
}

func (b *Builder) SaleDate(d time.Time) *Builder {
	b.inv.Data.SaleDate = &d
	return b
}

func (b *Builder) SalePeriod(start, end time.Time) *Builder {
	b.inv.Data.SalePeriod = &Period{Start: start, End: end}
	return b
}

// Line appends a line item with the next free line number.
func (b *Builder) Line(item LineItem) *Builder {
	if item.LineNumber == 0 {
		item.LineNumber = len(b.inv.Data.Lines) + 1
	}
	b.inv.Data.Lines = append(b.inv.Data.Lines, item)
	return b
}

// SimpleLine appends a net-priced line computed from quantity and unit price.
func (b *Builder) SimpleLine(name string, qty, unitPrice decimal.Decimal, rate VatRate) *Builder {
	net := qty.Mul(unitPrice).Round(2)
	item := LineItem{
		Name:      name,
		Quantity:  &qty,
		UnitPrice: &unitPrice,
		NetAmount: &net,
		Rate:      rate,
	}
	if pct, ok := rate.Percentage(); ok {
		vat := net.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
		item.VatAmount = &vat
	}
	return b.Line(item)
}

func (b *Builder) Summary(s Summary) *Builder {
	b.inv.Data.Summary = s
	return b
}

func (b *Builder) Payment(p Payment) *Builder {
	payment := p
	b.inv.Data.Payment = &payment
	return b
}

func (b *Builder) Correction(reason string, ref *CorrectedRef) *Builder {
	b.inv.Data.Correction = &Correction{Reason: reason, Corrected: ref}
	return b
}

// Build returns the assembled invoice. The builder can keep being used; the
// returned pointer shares its state.
func (b *Builder) Build() *Invoice {
	return &b.inv
}
