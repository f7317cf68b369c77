package schema

import (
	"embed"
	"io/fs"
	"strings"
)

// Schemas ship inside the binary so validation is deterministic and works
// offline; cross-schema imports resolve against this filesystem only.
//
//go:embed schemas
var schemaFS embed.FS

// resolverFS serves schema references for one version's directory. Lookups
// are by bare filename, so relative schemaLocation hints resolve regardless
// of how the referencing schema spells the path. External http(s) URIs are
// passed through unresolved; the compiler sees them as absent rather than
// rejected, and never triggers a network fetch.
type resolverFS struct {
	base fs.FS
}

func newResolverFS(version Version) (resolverFS, error) {
	dir := "schemas/fa3"
	if version == FA2 {
		dir = "schemas/fa2"
	}
	sub, err := fs.Sub(schemaFS, dir)
	if err != nil {
		return resolverFS{}, err
	}
	return resolverFS{base: sub}, nil
}

func (r resolverFS) Open(name string) (fs.File, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return nil, fs.ErrNotExist
	}
	// Exact match first, then the bare filename.
	if f, err := r.base.Open(name); err == nil {
		return f, nil
	}
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return r.base.Open(name[i+1:])
	}
	return nil, fs.ErrNotExist
}
