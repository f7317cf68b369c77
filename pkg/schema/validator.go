package schema

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"sync"

	"github.com/dmitrymomot/ksefkit/pkg/invoice"
	"github.com/dmitrymomot/ksefkit/pkg/validation"
)

// ErrNilDocument is returned when ValidateDocument is called without a
// document.
var ErrNilDocument = errors.New("schema: document is nil")

// Option configures a single validation call.
type Option func(*callOptions)

type callOptions struct {
	version Version
}

// WithVersion pins the schema version, bypassing namespace detection.
func WithVersion(v Version) Option {
	return func(o *callOptions) { o.version = v }
}

// Validator validates serialized invoices against the bundled schemas. The
// compiled schema sets are built lazily, at most once per version, and are
// safe for concurrent use; results are not shared between calls.
type Validator struct {
	mu    sync.RWMutex
	cache map[Version]*compiled
}

// New returns a Validator. Construction is cheap; schemas compile on first
// use.
func New() *Validator {
	return &Validator{}
}

// ValidateXML validates raw XML text.
func (v *Validator) ValidateXML(xmlText string, opts ...Option) (*validation.Result, error) {
	return v.validateBytes([]byte(xmlText), opts...)
}

// ValidateReader validates an XML stream. The stream is read fully before
// validation so the version can be detected from the root element.
func (v *Validator) ValidateReader(r io.Reader, opts ...Option) (*validation.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		// An unreadable stream is indistinguishable from a truncated
		// document from the caller's point of view.
		res := validation.New()
		res.AddError(CodeMalformedXML, "document could not be read: "+err.Error(), "")
		return res, nil
	}
	return v.validateBytes(data, opts...)
}

// ValidateDocument serializes the document and validates the result. A
// serialization failure becomes a validation error on the result, preserving
// the never-throw-for-bad-input contract; the only Go errors are a nil
// document and schema-compile failures.
func (v *Validator) ValidateDocument(inv *invoice.Invoice, opts ...Option) (*validation.Result, error) {
	if inv == nil {
		return nil, ErrNilDocument
	}

	version := resolveOptions(opts).version
	if version == VersionAuto {
		version = newest
	}

	data, err := inv.ToXML(version.Namespace())
	if err != nil {
		res := validation.New()
		res.AddError(CodeSerializationFailed, "document could not be serialized: "+err.Error(), "")
		return res, nil
	}
	return v.validateBytes(data, WithVersion(version))
}

// SchemasLoaded reports whether every available schema version has been
// compiled and cached.
func (v *Validator) SchemasLoaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, version := range AvailableVersions() {
		if v.cache[version] == nil {
			return false
		}
	}
	return true
}

func resolveOptions(opts []Option) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (v *Validator) validateBytes(data []byte, opts ...Option) (*validation.Result, error) {
	res := validation.New()

	// Malformed XML is a document defect, reported once with its own code
	// instead of being funneled through the schema engine.
	if err := checkWellFormed(data); err != nil {
		res.AddError(CodeMalformedXML, "document is not well-formed XML: "+err.Error(), "")
		return res, nil
	}

	version := resolveOptions(opts).version
	if version == VersionAuto {
		version = detectVersion(bytes.NewReader(data))
	}

	c, err := v.compiledFor(version)
	if err != nil {
		return nil, err
	}

	for _, violation := range c.violations(bytes.NewReader(data)) {
		msg := violation.Error()
		res.AddError(classify(msg), msg, extractField(msg))
	}
	return res, nil
}

// compiledFor returns the compiled schema for a version, building it on
// first use behind a double-checked lock: concurrent cold-start callers
// block once instead of compiling N times, and warm reads take only the
// read lock.
func (v *Validator) compiledFor(version Version) (*compiled, error) {
	v.mu.RLock()
	c := v.cache[version]
	v.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if c := v.cache[version]; c != nil {
		return c, nil
	}

	c, err := compileVersion(version)
	if err != nil {
		return nil, err
	}
	if v.cache == nil {
		v.cache = make(map[Version]*compiled, len(AvailableVersions()))
	}
	v.cache[version] = c
	return c, nil
}

func checkWellFormed(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		if _, err := dec.Token(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
