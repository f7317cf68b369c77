package schema

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/dmitrymomot/ksefkit/pkg/invoice"
)

// Version identifies a supported schema release.
type Version string

const (
	// VersionAuto selects the version by inspecting the root element's
	// namespace, defaulting to the newest release when it is unknown.
	VersionAuto Version = ""

	FA2 Version = "FA2"
	FA3 Version = "FA3"
)

// newest is the fallback for unknown namespaces and the default for
// documents without one.
const newest = FA3

// Namespace returns the XML namespace identifying the version.
func (v Version) Namespace() string {
	if v == FA2 {
		return invoice.NamespaceFA2
	}
	return invoice.NamespaceFA3
}

// AvailableVersions lists every version this build can validate against,
// oldest first.
func AvailableVersions() []Version {
	return []Version{FA2, FA3}
}

// detectVersion peeks at the root element's namespace without parsing the
// rest of the document. Any read or syntax problem falls through to the
// newest version; actual well-formedness is judged during validation.
func detectVersion(r io.Reader) Version {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return newest
		}
		if start, ok := tok.(xml.StartElement); ok {
			switch strings.TrimSpace(start.Name.Space) {
			case invoice.NamespaceFA2:
				return FA2
			case invoice.NamespaceFA3:
				return FA3
			default:
				return newest
			}
		}
	}
}
