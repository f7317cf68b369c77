package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileVersion(t *testing.T) {
	t.Parallel()

	t.Run("every bundled version compiles", func(t *testing.T) {
		for _, version := range AvailableVersions() {
			c, err := compileVersion(version)
			require.NoError(t, err, "version %s", version)
			require.NotNil(t, c.engine, "version %s", version)
		}
	})

	t.Run("compiled engine resolves the imported type schema", func(t *testing.T) {
		// TNrNIP lives in typy.xsd; a document rejected on its pattern proves
		// the import was resolved through the embedded filesystem.
		c, err := compileVersion(FA2)
		require.NoError(t, err)

		doc := `<Faktura xmlns="http://crd.gov.pl/wzor/2023/06/29/12648/"><Naglowek><KodFormularza>FA</KodFormularza><WariantFormularza>2</WariantFormularza><DataWytworzeniaFa>2026-03-01</DataWytworzeniaFa></Naglowek><Podmiot1><DaneIdentyfikacyjne><NIP>not-a-nip</NIP><Nazwa>X</Nazwa></DaneIdentyfikacyjne></Podmiot1></Faktura>`
		errs := c.violations(strings.NewReader(doc))
		assert.NotEmpty(t, errs)
	})
}
