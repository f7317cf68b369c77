// Package nip validates Polish taxpayer identification numbers (NIP): ten
// digits with a weighted mod-11 checksum. Validation never throws for bad
// input; findings are reported through the validation.Result contract with at
// most one error per call.
package nip

import (
	"strings"

	"github.com/dmitrymomot/ksefkit/pkg/validation"
)

// Issue codes reported by this package.
const (
	CodeEmpty             = "NIP_EMPTY"
	CodeInvalidLength     = "NIP_INVALID_LENGTH"
	CodeInvalidCharacters = "NIP_INVALID_CHARACTERS"
	CodeInvalidChecksum   = "NIP_INVALID_CHECKSUM"
)

// weights applied to digits 0-8; the mod-11 remainder must equal digit 9.
var weights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// Normalize strips the separators commonly found in formatted NIPs
// (hyphens and spaces).
func Normalize(value string) string {
	value = strings.ReplaceAll(value, "-", "")
	return strings.ReplaceAll(value, " ", "")
}

// Validate checks a NIP and returns a result carrying at most one error. The
// field path on issues is left empty; callers validating a document field
// attach their own path.
func Validate(value string) *validation.Result {
	return ValidateField(value, "")
}

// ValidateField is Validate with an explicit field path recorded on any issue.
func ValidateField(value, field string) *validation.Result {
	res := validation.New()

	normalized := Normalize(value)
	if strings.TrimSpace(normalized) == "" {
		res.AddError(CodeEmpty, "tax identifier is required", field)
		return res
	}
	if len(normalized) != 10 {
		res.AddError(CodeInvalidLength, "tax identifier must be exactly 10 digits", field)
		return res
	}
	for _, c := range normalized {
		if c < '0' || c > '9' {
			res.AddError(CodeInvalidCharacters, "tax identifier must contain only digits", field)
			return res
		}
	}

	sum := 0
	for i, w := range weights {
		sum += w * int(normalized[i]-'0')
	}
	// A remainder of 10 can never match a single check digit, so identifiers
	// producing it are invalid by construction.
	expected := sum % 11
	if expected == 10 || expected != int(normalized[9]-'0') {
		res.AddError(CodeInvalidChecksum, "tax identifier checksum mismatch", field)
	}
	return res
}

// IsValid is the boolean fast path over Validate.
func IsValid(value string) bool {
	return Validate(value).IsValid()
}
