// Package rules implements the cross-field business-rule validator for
// invoices. It orchestrates the checksum validators (pkg/nip, pkg/iban) and
// the date validator (pkg/dates), adds its own structural and arithmetic
// checks, and merges everything into one validation.Result.
//
// # Architecture
//
// Validation is a stateless pass over the document graph, in a fixed order:
// structural presence, seller, buyer, invoice data, line items, header
// reconciliation, payment block. There is no short-circuiting; later checks
// still run after earlier ones have produced errors, so a single call
// surfaces the complete issue set.
//
// Line-item arithmetic and header reconciliation compare recomputed amounts
// against declared ones within a fixed monetary tolerance of 0.02, chosen to
// absorb rounding, not to mask real errors. The boundary is inclusive: a
// divergence of exactly 0.02 passes.
//
// # Legacy-rate folding
//
// The header only exposes summary fields for the current rate set, so lines
// carrying legacy rates are folded into the successor bucket (22%→23%,
// 7%→8%, 3%→4%) before reconciliation. A document containing only
// legacy-rate lines therefore reconciles against the successor's summary
// fields; this mirrors the long-standing behavior of the format and is kept
// as-is even though such documents may never reconcile cleanly.
//
// # Usage
//
//	v := rules.New()
//	res, err := v.ValidateInvoice(doc) // err only for a nil document
//	if err != nil { ... }
//	for _, issue := range res.Errors { ... }
package rules
