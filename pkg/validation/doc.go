// Package validation provides the shared result model used by every validator
// in this module: an ordered, two-severity accumulator of issues.
//
// A Result collects errors (the document is invalid) and warnings (the
// document is usable but anomalous) during a single validation pass. Nothing
// is thrown for a data problem; validators append issues and keep going, so a
// single call surfaces the complete issue set.
//
// # Architecture
//
// Core building blocks:
//   - Issue    – immutable value: stable machine-matchable code, human message,
//     optional dotted field path into the document
//   - Result   – mutable accumulator with ordered Errors and Warnings slices
//   - Severity – error or warning
//
// Issue codes form a flat, stable string namespace grouped by prefix (NIP_*,
// IBAN_*/NRB_*, DATE_*, INV_*/SELLER_*/BUYER_*/ITEM_*/PAYMENT_*, XSD_*), so
// consumers can pattern-match on Code without depending on internal types.
//
// # Usage
//
//	res := validation.New()
//	res.AddError("NIP_EMPTY", "tax identifier is required", "Seller.TaxId")
//	res.Merge(other)
//	if !res.IsValid() {
//	    // inspect res.Errors, res.Warnings
//	}
//
// Result instances are not goroutine-safe; each validation call constructs and
// returns its own.
package validation
