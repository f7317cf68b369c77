// Package schema validates serialized invoices against the versioned FA XML
// Schemas bundled with this module. It implements the same accumulate-issues
// contract as pkg/rules: every constraint violation is collected into a
// validation.Result, nothing is thrown for bad input, and unparsable XML
// becomes a validation error rather than a Go error.
//
// # Architecture
//
// Two schema versions are supported (FA2 and FA3), identified by the XML
// namespace on the document's root element. Schemas are compiled once per
// Validator from embedded resources, on first use, behind a double-checked
// lock: concurrent cold-start callers block on the compile instead of racing
// to repeat it, and post-initialization reads take only a read lock.
// Cross-schema imports resolve entirely from the embedded filesystem; no
// network access ever happens.
//
// Violations reported by the schema engine are classified into a stable
// XSD_* code set by matching message fragments (required/missing, pattern,
// enumeration, length, occurrence, type). The classifier is best effort:
// unmatched messages fall back to XSD_SCHEMA_VIOLATION, and consumers should
// treat the fallback as an acceptable outcome for any input.
//
// # Usage
//
//	v := schema.New()
//	res, err := v.ValidateXML(xmlText)                    // auto-detected version
//	res, err = v.ValidateXML(xmlText, schema.WithVersion(schema.FA2))
//	res, err = v.ValidateDocument(doc)                    // serializes first
//
// The returned error is reserved for deployment defects (an embedded schema
// that fails to compile); document problems are always on the Result.
package schema
