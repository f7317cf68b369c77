// Package iban validates bank account numbers in two forms: full IBANs
// (ISO 13616 mod-97 checksum) and bare Polish domestic account numbers (NRB,
// the 26-digit IBAN tail without the "PL" prefix). Findings are reported
// through the validation.Result contract; hard errors cover length bounds,
// structural shape, and checksum failure, while length conventions surface as
// warnings.
package iban

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/ksefkit/pkg/validation"
)

// Issue codes reported by this package.
const (
	CodeTooShort         = "IBAN_TOO_SHORT"
	CodeTooLong          = "IBAN_TOO_LONG"
	CodeInvalidFormat    = "IBAN_INVALID_FORMAT"
	CodeInvalidChecksum  = "IBAN_INVALID_CHECKSUM"
	CodeUnexpectedLength = "IBAN_UNEXPECTED_LENGTH"
	CodeNRBChecksum      = "NRB_INVALID_CHECKSUM"
	CodeNRBUnusualLength = "NRB_UNUSUAL_LENGTH"
)

const (
	minLength = 10
	maxLength = 34

	// nrbLength is the conventional length of a domestic account number;
	// other digit-only lengths are unusual but not rejected.
	nrbLength = 26
)

// countryLengths lists the exact IBAN length for countries this library
// knows; IBANs from unlisted countries are checked for checksum only.
var countryLengths = map[string]int{
	"PL": 28,
}

var (
	ibanShapeRegex = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]+$`)
	digitsRegex    = regexp.MustCompile(`^[0-9]+$`)
)

// Normalize strips spaces and uppercases the account number.
func Normalize(value string) string {
	return strings.ToUpper(strings.ReplaceAll(value, " ", ""))
}

// Validate checks an account number in either IBAN or NRB form.
func Validate(value string) *validation.Result {
	return ValidateField(value, "")
}

// ValidateField is Validate with an explicit field path recorded on issues.
func ValidateField(value, field string) *validation.Result {
	res := validation.New()

	normalized := Normalize(value)
	if len(normalized) < minLength {
		res.AddError(CodeTooShort, "account number is too short", field)
		return res
	}
	if len(normalized) > maxLength {
		res.AddError(CodeTooLong, "account number is too long", field)
		return res
	}

	switch {
	case isLetter(normalized[0]) && isLetter(normalized[1]):
		validateIBAN(res, normalized, field)
	case digitsRegex.MatchString(normalized):
		validateNRB(res, normalized, field)
	default:
		res.AddError(CodeInvalidFormat, "account number must be an IBAN or a digit-only domestic number", field)
	}
	return res
}

// IsValid is the boolean fast path over Validate.
func IsValid(value string) bool {
	return Validate(value).IsValid()
}

func validateIBAN(res *validation.Result, value, field string) {
	if !ibanShapeRegex.MatchString(value) {
		res.AddError(CodeInvalidFormat, "IBAN must be two letters, two digits, and an alphanumeric tail", field)
		return
	}

	// Country length conventions are advisory: a wrong length for a known
	// country is surfaced as a warning while the checksum is still verified.
	country := value[:2]
	if want, ok := countryLengths[country]; ok && len(value) != want {
		res.AddWarning(CodeUnexpectedLength, "IBAN length does not match the country convention", field)
	}

	if !checksumOK(value) {
		res.AddError(CodeInvalidChecksum, "IBAN checksum mismatch", field)
	}
}

func validateNRB(res *validation.Result, value, field string) {
	if len(value) != nrbLength {
		// The 26-digit convention is not enforced by this validator; other
		// lengths cannot be checksum-verified, so they only warn.
		res.AddWarning(CodeNRBUnusualLength, "domestic account number is not 26 digits", field)
		return
	}
	if !checksumOK("PL" + value) {
		res.AddError(CodeNRBChecksum, "domestic account number checksum mismatch", field)
	}
}

// checksumOK runs the ISO 13616 rearrangement: move the first four characters
// to the end, map letters to their index + 10, and require the resulting
// numeral to be congruent to 1 mod 97. The remainder is computed
// incrementally so the numeral never needs to materialize.
func checksumOK(value string) bool {
	rearranged := value[4:] + value[:4]

	rem := 0
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			n := int(c-'A') + 10
			rem = (rem*100 + n) % 97
		default:
			return false
		}
	}
	return rem == 1
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
