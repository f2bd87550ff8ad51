package openapi

import (
	"context"
	"errors"

	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// ErrUnknownSchema reports a schema or operation name missing from the
// document.
var ErrUnknownSchema = errors.New("openapi: unknown schema")

// Parser converts OpenAPI documents into descriptor catalogs: one entry per
// component schema plus the JSON request body of every operation.
type Parser interface {
	Catalog(ctx context.Context, doc Document) (*schema.Catalog, error)
}

// Verifier checks generated values against the schemas of the document they
// were generated from.
type Verifier interface {
	VerifySchema(ctx context.Context, doc Document, name string, value any) error
	VerifyOperation(ctx context.Context, doc Document, operationID string, value any) error
}

// ParserOptions exposes parser toggles.
type ParserOptions struct {
	// ResolveReferences validates the document and allows external $refs.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents without paths, such as
	// component-only schema libraries.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles reference resolution and validation.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles support for component-only documents.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions applies ParserOption functions over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences:     true,
		AllowPartialDocuments: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
