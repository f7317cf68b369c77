package logger

import (
	"log/slog"

	"github.com/dmitrymomot/ksefkit/pkg/validation"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// File records the document path under the key "file".
func File(path string) slog.Attr {
	return slog.String("file", path)
}

// SchemaVersion records the schema version a document was validated against.
func SchemaVersion(v string) slog.Attr {
	return slog.String("schema_version", v)
}

// Issues summarizes a validation result as error and warning counts.
func Issues(res *validation.Result) slog.Attr {
	if res == nil {
		return slog.Attr{}
	}
	return slog.Attr{Key: "issues", Value: slog.GroupValue(
		slog.Int("errors", len(res.Errors)),
		slog.Int("warnings", len(res.Warnings)),
	)}
}
