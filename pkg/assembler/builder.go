// Package assembler fills model instances field by field: pinned values
// first, generated values for everything the selected fill mode asks for.
package assembler

import (
	"errors"
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-fixturegen/pkg/generator"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// Mode selects which fields a fill pass generates.
type Mode int

const (
	FillAll Mode = iota
	FillRequired
	FillOptional
)

func (m Mode) String() string {
	switch m {
	case FillAll:
		return "all"
	case FillRequired:
		return "required"
	case FillOptional:
		return "optional"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts the names returned by Mode.String.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "all":
		return FillAll, nil
	case "required":
		return FillRequired, nil
	case "optional":
		return FillOptional, nil
	}
	return FillAll, fmt.Errorf("assembler: unknown fill mode %q", name)
}

// Builder assembles one instance of a model schema. It is not safe for
// concurrent use.
type Builder struct {
	schema *schema.ModelSchema
	gen    generator.Generator
	src    *generator.Source
	depth  int
	data   *orderedmap.OrderedMap[string, any]
}

// Option configures a Builder.
type Option func(*Builder)

// WithSource sets the random source used for every generated field.
func WithSource(src *generator.Source) Option {
	return func(b *Builder) {
		if src != nil {
			b.src = src
		}
	}
}

// WithSeed is shorthand for WithSource(generator.NewSource(seed)).
func WithSeed(seed uint64) Option {
	return WithSource(generator.NewSource(seed))
}

// WithDepth sets the starting recursion depth.
func WithDepth(depth int) Option {
	return func(b *Builder) {
		b.depth = depth
	}
}

// New returns a builder for s backed by gen.
func New(s *schema.ModelSchema, gen generator.Generator, options ...Option) (*Builder, error) {
	if s == nil || !s.Defined() {
		return nil, errors.New("assembler: schema is nil or undefined")
	}
	if gen == nil {
		return nil, errors.New("assembler: generator is nil")
	}
	if err := gen.Options().Config.Validate(); err != nil {
		return nil, fmt.Errorf("assembler: %w", err)
	}
	b := &Builder{
		schema: s,
		gen:    gen,
		data:   orderedmap.New[string, any](),
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	if b.src == nil {
		b.src = generator.NewRandomSource()
	}
	return b, nil
}

// Set pins a value. Pinned values are never replaced by generated ones and
// are kept even when name is not a declared field.
func (b *Builder) Set(name string, value any) *Builder {
	b.data.Set(name, value)
	return b
}

// WithSmartGeneration toggles the field-name overlay for this builder only.
func (b *Builder) WithSmartGeneration(enabled bool) *Builder {
	b.gen = b.gen.With(generator.WithSmartFields(enabled))
	return b
}

// FillAll pins the given values, then generates every missing field.
func (b *Builder) FillAll(pinned map[string]any) error {
	return b.Fill(FillAll, pinned)
}

// FillRequired pins the given values, then generates missing required fields.
func (b *Builder) FillRequired(pinned map[string]any) error {
	return b.Fill(FillRequired, pinned)
}

// FillOptional pins the given values, then generates missing optional fields.
func (b *Builder) FillOptional(pinned map[string]any) error {
	return b.Fill(FillOptional, pinned)
}

// Fill runs one pass in the given mode. Passes compose: FillRequired followed
// by FillOptional yields the same field set as FillAll.
func (b *Builder) Fill(mode Mode, pinned map[string]any) error {
	keys := make([]string, 0, len(pinned))
	for key := range pinned {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.data.Set(key, pinned[key])
	}

	maxDepth := b.gen.Options().Config.MaxDepth
	fieldDepth := b.depth + 1
	if b.depth >= maxDepth {
		fieldDepth = b.depth
	}

	for _, field := range b.schema.Fields() {
		if _, present := b.data.Get(field.Name); present {
			continue
		}
		if mode == FillRequired && !field.Required {
			continue
		}
		if mode == FillOptional && field.Required {
			continue
		}
		value, err := b.gen.Generate(b.src, field.Type, field.Name, fieldDepth)
		if err != nil {
			return fmt.Errorf("assembler: %s.%s: %w", b.schema.Name(), field.Name, err)
		}
		b.data.Set(field.Name, value)
	}
	return nil
}

// Build returns the instance: declared fields in declaration order, then
// extra pinned keys in the order they were set.
func (b *Builder) Build() *schema.Instance {
	inst := schema.NewInstance(b.schema)
	for _, field := range b.schema.Fields() {
		if value, ok := b.data.Get(field.Name); ok {
			inst.Set(field.Name, value)
		}
	}
	for pair := b.data.Oldest(); pair != nil; pair = pair.Next() {
		if !inst.Has(pair.Key) {
			inst.Set(pair.Key, pair.Value)
		}
	}
	return inst
}
