package schema

import (
	"regexp"
	"strings"
)

// Issue codes reported by this package.
const (
	CodeMalformedXML        = "XSD_MALFORMED_XML"
	CodeSerializationFailed = "XSD_SERIALIZATION_FAILED"
	CodeRequiredMissing     = "XSD_REQUIRED_MISSING"
	CodeInvalidValue        = "XSD_INVALID_VALUE"
	CodePatternMismatch     = "XSD_PATTERN_MISMATCH"
	CodeLengthViolation     = "XSD_LENGTH_VIOLATION"
	CodeEnumViolation       = "XSD_ENUM_VIOLATION"
	CodeUnexpectedContent   = "XSD_UNEXPECTED_CONTENT"
	CodeSchemaViolation     = "XSD_SCHEMA_VIOLATION"
)

// classifier fragments, checked in order against the lower-cased message.
// This mirrors the message text of the underlying engine and is best effort:
// anything unmatched falls back to the generic code.
var fragments = []struct {
	code  string
	parts []string
}{
	{CodeRequiredMissing, []string{"required", "missing", "is expected"}},
	{CodePatternMismatch, []string{"pattern"}},
	{CodeEnumViolation, []string{"enumeration"}},
	{CodeLengthViolation, []string{"length", "too long", "too short"}},
	{CodeUnexpectedContent, []string{"unexpected", "occurrence", "occurs", "not allowed", "cannot appear"}},
	{CodeInvalidValue, []string{"invalid value", "not a valid", "type"}},
}

func classify(message string) string {
	lower := strings.ToLower(message)
	for _, f := range fragments {
		for _, part := range f.parts {
			if strings.Contains(lower, part) {
				return f.code
			}
		}
	}
	return CodeSchemaViolation
}

// fieldNameRegexes pull the target element or attribute name out of a
// violation message when the engine quotes it.
var fieldNameRegexes = []*regexp.Regexp{
	regexp.MustCompile(`element '([^']+)'`),
	regexp.MustCompile(`attribute '([^']+)'`),
	regexp.MustCompile(`element "([^"]+)"`),
	regexp.MustCompile(`attribute "([^"]+)"`),
	regexp.MustCompile(`'([A-Za-z_][A-Za-z0-9_.-]*)'`),
	regexp.MustCompile(`\{[^}]*\}([A-Za-z_][A-Za-z0-9_.-]*)`),
}

func extractField(message string) string {
	for _, re := range fieldNameRegexes {
		if m := re.FindStringSubmatch(message); m != nil {
			// Strip a namespace prefix so the field is the local name.
			name := m[1]
			if i := strings.LastIndexByte(name, ':'); i >= 0 {
				name = name[i+1:]
			}
			return name
		}
	}
	return ""
}
