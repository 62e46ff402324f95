// Package formatters defines the abstractions used to properly format a
// resolved Docker configuration for presentation.
package formatters

import (
	"context"
	"fmt"

	"github.com/redhat-openshift-ecosystem/dockerctx/internal/config"
)

// DefaultFormat is the format used when the user requests none.
const DefaultFormat = "json"

// FormatterFunc describes a function that formats an output payload.
type FormatterFunc = func(ctx context.Context, payload any) ([]byte, error)

// ResponseFormatter describes the expected methods a formatter
// must implement.
type ResponseFormatter interface {
	// PrettyName is the name used to represent this formatter.
	PrettyName() string
	// FileExtension represents the file extension one might use when creating
	// a file with the contents of this formatter.
	FileExtension() string
	// Format takes an output payload, formats it as needed, and returns the
	// formatted payload ready to write as a byte slice.
	Format(context.Context, any) (response []byte, formattingError error)
}

// NewForConfig returns a new formatter based on the user-provided configuration. It relies
// on config values which should align with known/supported/built-in formatters.
func NewForConfig(cfg config.Config) (ResponseFormatter, error) {
	return NewByName(cfg.ResponseFormat())
}

// NewByName returns a predefined ResponseFormatter with the given name.
func NewByName(name string) (ResponseFormatter, error) {
	formatter, defined := availableFormatters[name]
	if !defined {
		return nil, fmt.Errorf("%s: %s",
			"The requested formatter is unknown",
			name,
		)
	}

	return formatter, nil
}

// New returns a new formatter with the provided name and FormatterFunc.
func New(name, extension string, fn FormatterFunc) (ResponseFormatter, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf(
			"failed to create a new generic formatter: formatter name is required",
		)
	}

	gf := genericFormatter{
		name:          name,
		formatterFunc: fn,
		fileExtension: extension,
	}

	return &gf, nil
}

// genericFormatter represents a generic approach to formatting that implements the
// ResponseFormatter interface. Can be leveraged to build a custom formatter quickly.
type genericFormatter struct {
	name          string
	fileExtension string
	formatterFunc FormatterFunc
}

// PrettyName returns a string identification of the formatter that's in use.
func (f *genericFormatter) PrettyName() string {
	return f.name
}

// Format returns the formatted payload as a byte slice.
func (f *genericFormatter) Format(ctx context.Context, payload any) ([]byte, error) {
	return f.formatterFunc(ctx, payload)
}

// FileExtension returns the extension a user might use when formatting
// output with this formatter and writing that to disk.
func (f *genericFormatter) FileExtension() string {
	return f.fileExtension
}

// availableFormatters maps configuration-friendly values to pretty representations
// of the same value, and their corresponding Formatter included with this library.
var availableFormatters = map[string]ResponseFormatter{
	"json": &genericFormatter{"Generic JSON", "json", genericJSONFormatter},
	"yaml": &genericFormatter{"Generic YAML", "yaml", genericYAMLFormatter},
}
