package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fixturegen"
	"github.com/goliatone/go-fixturegen/pkg/assembler"
	"github.com/goliatone/go-fixturegen/pkg/generator"
	pkgopenapi "github.com/goliatone/go-fixturegen/pkg/openapi"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

type generateFlags struct {
	schema      string
	operation   string
	mode        string
	format      string
	config      string
	sets        []string
	seed        uint64
	maxDepth    int
	count       int
	noSmart     bool
	interactive bool
	verify      bool
}

// target is the descriptor picked from the catalog, either a named schema or
// an operation payload.
type target struct {
	label     string
	name      string
	operation string
	typ       schema.Descriptor
}

func newGenerateCmd(a *app) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate fixtures for a schema or operation request body",
		Example: `  fixturegen generate -s openapi.yaml --schema Pet --seed 7
  fixturegen generate -s openapi.yaml --operation createPet --set name=Rex --format yaml
  fixturegen generate -s https://example.com/openapi.json --interactive --count 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.schema, "schema", "", "Component schema to generate")
	f.StringVar(&flags.operation, "operation", "", "Operation whose request body to generate")
	f.StringVar(&flags.mode, "mode", "all", "Fill mode: all, required or optional")
	f.StringVarP(&flags.format, "format", "f", "json", "Output format: json or yaml")
	f.StringVar(&flags.config, "config", "", "YAML file with generator settings")
	f.StringArrayVar(&flags.sets, "set", nil, "Pin a field value (name=value), repeatable")
	f.Uint64Var(&flags.seed, "seed", 0, "Seed for reproducible output")
	f.IntVar(&flags.maxDepth, "max-depth", 0, "Override the maximum nesting depth")
	f.IntVarP(&flags.count, "count", "n", 1, "Number of fixtures to generate")
	f.BoolVar(&flags.noSmart, "no-smart", false, "Disable field-name based values")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "Pick the schema from a list")
	f.BoolVar(&flags.verify, "verify", false, "Validate each fixture against the document")
	cmd.MarkFlagsMutuallyExclusive("schema", "operation")
	return cmd
}

func (a *app) generate(cmd *cobra.Command, flags *generateFlags) error {
	ctx := cmd.Context()

	if flags.count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	mode, err := assembler.ParseMode(flags.mode)
	if err != nil {
		return err
	}
	pinned, err := parsePins(flags.sets)
	if err != nil {
		return err
	}
	gen, err := a.generator(cmd, flags)
	if err != nil {
		return err
	}

	doc, catalog, err := a.catalog(ctx)
	if err != nil {
		return err
	}
	tgt, err := a.pickTarget(ctx, catalog, flags)
	if err != nil {
		return err
	}

	if len(pinned) > 0 {
		a.logger.Debug("pinned fields", "target", tgt.label, "fields", sortedPins(pinned))
	}

	var verifier pkgopenapi.Verifier
	if flags.verify {
		verifier = fixturegen.NewVerifier()
	}

	values := make([]any, 0, flags.count)
	for i := 0; i < flags.count; i++ {
		var seed *uint64
		if cmd.Flags().Changed("seed") {
			s := flags.seed + uint64(i)
			seed = &s
		}
		value, err := synthesize(gen, tgt, mode, pinned, seed)
		if err != nil {
			return fmt.Errorf("%s: %w", tgt.label, err)
		}
		if verifier != nil {
			if err := verify(ctx, verifier, doc, tgt, value); err != nil {
				return err
			}
		}
		a.logger.Debug("fixture generated", "target", tgt.label, "index", i)
		values = append(values, value)
	}

	var out any = values
	if flags.count == 1 {
		out = values[0]
	}
	return encode(cmd.OutOrStdout(), flags.format, out)
}

func (a *app) generator(cmd *cobra.Command, flags *generateFlags) (generator.Generator, error) {
	options := []generator.Option{generator.WithLogger(a.logger)}
	if flags.config != "" {
		cfg, err := generator.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		options = append(options, generator.WithConfig(cfg))
	}
	if cmd.Flags().Changed("max-depth") {
		options = append(options, generator.WithMaxDepth(flags.maxDepth))
	}
	if flags.noSmart {
		options = append(options, generator.WithSmartFields(false))
	}
	gen := fixturegen.NewGenerator(options...)
	if err := gen.Options().Config.Validate(); err != nil {
		return nil, err
	}
	return gen, nil
}

func (a *app) pickTarget(ctx context.Context, catalog *schema.Catalog, flags *generateFlags) (target, error) {
	switch {
	case flags.schema != "":
		return schemaTarget(catalog, flags.schema)
	case flags.operation != "":
		return operationTarget(catalog, flags.operation)
	case !flags.interactive:
		return target{}, errors.New("one of --schema, --operation or --interactive is required")
	}

	var (
		options []string
		pick    []func() (target, error)
	)
	for _, name := range catalog.Names() {
		name := name
		options = append(options, name)
		pick = append(pick, func() (target, error) { return schemaTarget(catalog, name) })
	}
	for _, id := range catalog.Operations() {
		id := id
		op, _ := catalog.Operation(id)
		options = append(options, fmt.Sprintf("%s (%s %s)", id, op.Method, op.Path))
		pick = append(pick, func() (target, error) { return operationTarget(catalog, id) })
	}
	if len(options) == 0 {
		return target{}, errors.New("document has nothing to generate")
	}

	idx, err := a.picker.Select(ctx, "Generate a fixture for", options)
	if err != nil {
		return target{}, err
	}
	if idx < 0 || idx >= len(pick) {
		return target{}, fmt.Errorf("invalid selection %d", idx)
	}
	return pick[idx]()
}

func schemaTarget(catalog *schema.Catalog, name string) (target, error) {
	d, ok := catalog.Lookup(name)
	if !ok {
		return target{}, fmt.Errorf("%w: %q", pkgopenapi.ErrUnknownSchema, name)
	}
	return target{label: name, name: name, typ: d}, nil
}

func operationTarget(catalog *schema.Catalog, id string) (target, error) {
	op, ok := catalog.Operation(id)
	if !ok {
		return target{}, fmt.Errorf("%w: operation %q", pkgopenapi.ErrUnknownSchema, id)
	}
	return target{label: id, operation: id, typ: op.Payload}, nil
}

// synthesize builds models through the assembler so pins and fill modes
// apply; other descriptors go straight to the generator.
func synthesize(gen generator.Generator, tgt target, mode assembler.Mode, pinned map[string]any, seed *uint64) (any, error) {
	if model, ok := tgt.typ.(*schema.Model); ok {
		return fixturegen.Synthesize(fixturegen.Request{
			Schema:    model.Schema,
			Mode:      mode,
			Pinned:    pinned,
			Seed:      seed,
			Generator: gen,
		})
	}
	if len(pinned) > 0 {
		return nil, fmt.Errorf("--set needs a model, got %s", tgt.typ)
	}
	src := generator.NewRandomSource()
	if seed != nil {
		src = generator.NewSource(*seed)
	}
	return gen.Generate(src, tgt.typ, "", 0)
}

func verify(ctx context.Context, verifier pkgopenapi.Verifier, doc pkgopenapi.Document, tgt target, value any) error {
	if tgt.operation != "" {
		return verifier.VerifyOperation(ctx, doc, tgt.operation, value)
	}
	return verifier.VerifySchema(ctx, doc, tgt.name, value)
}

// parsePins reads name=value pairs. Values are decoded as YAML scalars so
// numbers and booleans keep their type.
func parsePins(sets []string) (map[string]any, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	pinned := make(map[string]any, len(sets))
	for _, set := range sets {
		name, raw, ok := strings.Cut(set, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", set)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
		if value == nil && raw != "" && raw != "null" && raw != "~" {
			value = raw
		}
		pinned[name] = value
	}
	return pinned, nil
}

func encode(w io.Writer, format string, value any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q, want json or yaml", format)
}

func sortedPins(pinned map[string]any) []string {
	keys := make([]string, 0, len(pinned))
	for key := range pinned {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
