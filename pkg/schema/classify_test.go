package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"required element", "element 'P_15' is required but missing", CodeRequiredMissing},
		{"missing child", "missing child element in 'Fa'", CodeRequiredMissing},
		{"pattern", "value does not match pattern '[A-Z]{3}' for element 'KodWaluty'", CodePatternMismatch},
		{"enumeration", "value 'XX' is not in the enumeration for 'RodzajFaktury'", CodeEnumViolation},
		{"length", "value exceeds maxLength facet for element 'Nazwa'", CodeLengthViolation},
		{"occurrence", "element 'Podmiot3' occurs too many times", CodeUnexpectedContent},
		{"unexpected element", "unexpected element 'Zagadka'", CodeUnexpectedContent},
		{"type mismatch", "'abc' is not a valid xsd:decimal", CodeInvalidValue},
		{"fallback", "something nobody anticipated", CodeSchemaViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.message))
		})
	}
}

func TestExtractField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"single quoted element", "element 'P_15' is required but missing", "P_15"},
		{"double quoted element", `element "KodWaluty" has an invalid value`, "KodWaluty"},
		{"attribute", "attribute 'xmlns' is not allowed", "xmlns"},
		{"clark notation", "unexpected {http://crd.gov.pl/wzor/2023/06/29/12648/}Zagadka", "Zagadka"},
		{"prefixed name is localized", "element 'tns:Naglowek' is out of order", "Naglowek"},
		{"nothing quotable", "validation failed", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractField(tt.message))
		})
	}
}

func TestDetectVersion(t *testing.T) {
	t.Parallel()

	t.Run("FA2 namespace", func(t *testing.T) {
		xml := `<?xml version="1.0"?><Faktura xmlns="http://crd.gov.pl/wzor/2023/06/29/12648/"/>`
		assert.Equal(t, FA2, detectVersion(strings.NewReader(xml)))
	})

	t.Run("FA3 namespace", func(t *testing.T) {
		xml := `<Faktura xmlns="http://crd.gov.pl/wzor/2025/06/25/13775/"/>`
		assert.Equal(t, FA3, detectVersion(strings.NewReader(xml)))
	})

	t.Run("unknown namespace defaults to newest", func(t *testing.T) {
		xml := `<Faktura xmlns="http://example.com/other/"/>`
		assert.Equal(t, FA3, detectVersion(strings.NewReader(xml)))
	})

	t.Run("detection skips the prolog and comments", func(t *testing.T) {
		xml := "<?xml version=\"1.0\"?><!-- legacy export -->\n<Faktura xmlns=\"http://crd.gov.pl/wzor/2023/06/29/12648/\"/>"
		assert.Equal(t, FA2, detectVersion(strings.NewReader(xml)))
	})

	t.Run("garbage defaults to newest", func(t *testing.T) {
		assert.Equal(t, FA3, detectVersion(strings.NewReader("not xml at all")))
	})
}

func TestResolverFS(t *testing.T) {
	t.Parallel()

	fsys, err := newResolverFS(FA2)
	assert.NoError(t, err)

	t.Run("exact name resolves", func(t *testing.T) {
		f, err := fsys.Open("typy.xsd")
		assert.NoError(t, err)
		_ = f.Close()
	})

	t.Run("path hints fall back to the bare filename", func(t *testing.T) {
		f, err := fsys.Open("../common/typy.xsd")
		assert.NoError(t, err)
		_ = f.Close()
	})

	t.Run("http locations pass through unresolved", func(t *testing.T) {
		_, err := fsys.Open("http://crd.gov.pl/xml/schematy/typy.xsd")
		assert.Error(t, err)
	})
}
