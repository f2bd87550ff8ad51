// Package fixturegen synthesizes randomized, schema-conformant instances of
// declared data models for use as test fixtures.
//
// Schemas are described with the closed descriptor set in pkg/schema, either
// by hand or by loading an OpenAPI document into a schema.Catalog. Synthesize
// fills one model instance; the generator and assembler packages expose the
// lower-level pieces.
package fixturegen

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	internalgen "github.com/goliatone/go-fixturegen/internal/generator"
	internalLoader "github.com/goliatone/go-fixturegen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-fixturegen/internal/openapi/parser"
	"github.com/goliatone/go-fixturegen/pkg/assembler"
	"github.com/goliatone/go-fixturegen/pkg/generator"
	pkgopenapi "github.com/goliatone/go-fixturegen/pkg/openapi"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// NewGenerator constructs the descriptor dispatcher.
func NewGenerator(options ...generator.Option) generator.Generator {
	return internalgen.New(generator.NewOptions(options...))
}

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewVerifier constructs a verifier that checks fixtures against the document
// they were generated from.
func NewVerifier(options ...pkgopenapi.ParserOption) pkgopenapi.Verifier {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.NewVerifier(cfg)
}

// NewAdapter chains a loader and a parser built from the given options.
func NewAdapter(loaderOptions []pkgopenapi.LoaderOption, parserOptions ...pkgopenapi.ParserOption) *pkgopenapi.Adapter {
	return pkgopenapi.NewAdapter(NewLoader(loaderOptions...), NewParser(parserOptions...))
}

// Request describes one Synthesize call. Nil pointers and zero element
// bounds keep the generator's configuration.
type Request struct {
	Schema *schema.ModelSchema
	Mode   assembler.Mode
	Pinned map[string]any

	MaxDepth    *int
	MinElements int
	MaxElements int
	Seed        *uint64

	// Generator is used when set; otherwise one is built from Options.
	Generator generator.Generator
	Options   []generator.Option
}

// Synthesize fills one instance of req.Schema.
func Synthesize(req Request) (*schema.Instance, error) {
	if req.Schema == nil {
		return nil, errors.New("fixturegen: schema is required")
	}

	gen := req.Generator
	if gen == nil {
		gen = NewGenerator(req.Options...)
	}
	var overrides []generator.Option
	if req.MaxDepth != nil {
		overrides = append(overrides, generator.WithMaxDepth(*req.MaxDepth))
	}
	if req.MinElements != 0 || req.MaxElements != 0 {
		overrides = append(overrides, generator.WithElementRange(req.MinElements, req.MaxElements))
	}
	if len(overrides) > 0 {
		gen = gen.With(overrides...)
	}
	if err := gen.Options().Config.Validate(); err != nil {
		return nil, fmt.Errorf("fixturegen: %w", err)
	}

	src := generator.NewRandomSource()
	if req.Seed != nil {
		src = generator.NewSource(*req.Seed)
	}

	builder, err := assembler.New(req.Schema, gen, assembler.WithSource(src))
	if err != nil {
		return nil, fmt.Errorf("fixturegen: %w", err)
	}
	if err := builder.Fill(req.Mode, req.Pinned); err != nil {
		return nil, fmt.Errorf("fixturegen: %w", err)
	}
	return builder.Build(), nil
}

// Flatten converts an instance into an ordered map of plain values.
func Flatten(inst *schema.Instance) *orderedmap.OrderedMap[string, any] {
	return assembler.Flatten(inst)
}
