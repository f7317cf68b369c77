package schema

import (
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/jacoelho/xsd"
)

// compiled wraps one version's compiled schema engine. It confines the schema
// engine's surface to this file; everything else in the package works with
// plain violation errors.
type compiled struct {
	engine *xsd.Engine
}

func compileVersion(version Version) (*compiled, error) {
	fsys, err := newResolverFS(version)
	if err != nil {
		return nil, fmt.Errorf("schema: resources for %s: %w", version, err)
	}
	entry, err := fs.ReadFile(fsys, "schemat.xsd")
	if err != nil {
		return nil, fmt.Errorf("schema: resources for %s: %w", version, err)
	}

	// Cross-schema imports (typy.xsd) resolve against the embedded version
	// directory; the resolver keeps the http(s) passthrough of resolverFS.
	src := xsd.Bytes("schemat.xsd", entry).WithResolver(xsd.ResolverFunc(
		func(_ context.Context, _, location string) (xsd.SchemaSource, error) {
			data, err := fs.ReadFile(fsys, location)
			if err != nil {
				return xsd.SchemaSource{}, err
			}
			return xsd.Bytes(location, data), nil
		}))

	engine, err := xsd.Compile(context.Background(), src)
	if err != nil {
		// A bundled schema that cannot compile is a deployment defect, not a
		// document defect; it surfaces as a Go error at first use.
		return nil, fmt.Errorf("schema: compile %s: %w", version, err)
	}
	return &compiled{engine: engine}, nil
}

// violations validates the document stream and returns every collected
// constraint violation. The engine accumulates instead of stopping at the
// first problem; aggregate errors are flattened so each violation can be
// classified individually.
func (c *compiled) violations(r io.Reader) []error {
	err := c.engine.Validate(context.Background(), r)
	if err == nil {
		return nil
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := multi.Unwrap(); len(errs) > 0 {
			return errs
		}
	}
	return []error{err}
}
