package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-fixturegen/pkg/openapi"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Catalog converts component schemas and operation request bodies into
// descriptors.
func (p *Parser) Catalog(ctx context.Context, doc pkgopenapi.Document) (*schema.Catalog, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	catalog, err := newConverter(spec).catalog(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: %w", err)
	}
	if len(catalog.Names()) == 0 && len(catalog.Operations()) == 0 {
		return nil, errors.New("openapi parser: document has no schemas or request bodies")
	}
	return catalog, nil
}

func (p *Parser) load(ctx context.Context, doc pkgopenapi.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	hasPaths := spec.Paths != nil && spec.Paths.Len() > 0
	if !hasPaths && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	// Component-only documents fail the paths requirement of Validate.
	if p.options.ResolveReferences && hasPaths {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	return spec, nil
}
