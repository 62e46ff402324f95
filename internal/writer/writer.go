// Package writer provides functionality for writing resolver output files to a
// configured destination directory. It provides simple functionality that can be
// accessible from any calling library, with the active writer carried in a
// context.Context.
package writer

import (
	"context"
	"io"
)

const DefaultOutputDir = "."

// ContextWithWriter adds OutputWriter w to the context ctx.
func ContextWithWriter(ctx context.Context, w OutputWriter) context.Context {
	return context.WithValue(ctx, outputWriterContextKey, w)
}

// WriterFromContext returns the writer from the context, or nil.
func WriterFromContext(ctx context.Context) OutputWriter {
	w := ctx.Value(outputWriterContextKey)
	if writer, ok := w.(OutputWriter); ok {
		return writer
	}

	return nil
}

// contextKey is a key used to store/retrieve OutputWriter in/from context.Context.
type contextKey string

const outputWriterContextKey contextKey = "OutputWriter"

// OutputWriter is the functionality required by all implementations.
type OutputWriter interface {
	WriteFile(filename string, contents io.Reader) (fullpathToFile string, err error)
}
