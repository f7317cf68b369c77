// Package invoice holds the structured-invoice document model validated by
// the rest of this module: parties, third-party roles, line items, VAT-rate
// variants, per-rate summary amounts, payment and correction blocks.
//
// The model is a plain record graph. Fields are freely settable and no
// invariants are enforced here; judging whether a populated document is
// internally consistent is the job of pkg/rules and pkg/schema. Monetary
// values use github.com/shopspring/decimal; optional amounts and dates are
// pointers so "absent" and "zero" stay distinguishable.
//
// The package also ships a fluent Builder for constructing documents in tests
// and integrations, and XML serialization into the versioned FA vocabulary
// consumed by the schema-conformance validator.
package invoice
