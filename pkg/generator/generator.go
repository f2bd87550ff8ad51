package generator

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// Generator produces a value for a descriptor. Implementations hold only
// immutable configuration and are safe for concurrent use; all randomness
// comes from the Source passed to Generate.
type Generator interface {
	// Generate returns a value for typ. fieldName may be empty; depth is the
	// current recursion depth.
	Generate(src *Source, typ schema.Descriptor, fieldName string, depth int) (any, error)

	// Options returns the options the generator was built with.
	Options() Options

	// With returns a generator with extra options applied on top.
	With(options ...Option) Generator
}

// FieldFunc produces a value for a semantically named string field.
type FieldFunc func(src *Source) any

// FieldPattern pairs a lowercase substring with the generator used when a
// field name contains it.
type FieldPattern struct {
	Pattern  string
	Generate FieldFunc
}

// Options configures a Generator.
type Options struct {
	Config Config
	Logger *slog.Logger

	// ExactFields and PatternFields extend the built-in field-name overlay.
	// Entries here win over the built-in tables.
	ExactFields   map[string]FieldFunc
	PatternFields []FieldPattern
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(opts *Options) {
		if cfg.Now == nil {
			cfg.Now = opts.Config.Now
		}
		opts.Config = cfg
	}
}

// WithMaxDepth sets the recursion bound.
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		opts.Config.MaxDepth = depth
	}
}

// WithElementRange sets the container size bounds.
func WithElementRange(lo, hi int) Option {
	return func(opts *Options) {
		opts.Config.MinElements = lo
		opts.Config.MaxElements = hi
	}
}

// WithSmartFields toggles the field-name overlay.
func WithSmartFields(enabled bool) Option {
	return func(opts *Options) {
		opts.Config.SmartFields = enabled
	}
}

// WithClock injects the clock used for datetime and date values.
func WithClock(now func() time.Time) Option {
	return func(opts *Options) {
		if now != nil {
			opts.Config.Now = now
		}
	}
}

// WithLogger routes debug events (depth exhaustion, cycle breaks, constraint
// recovery, overlay hits) to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithFieldGenerator registers an exact, case-insensitive field-name mapping.
func WithFieldGenerator(name string, fn FieldFunc) Option {
	return func(opts *Options) {
		if name == "" || fn == nil {
			return
		}
		if opts.ExactFields == nil {
			opts.ExactFields = make(map[string]FieldFunc)
		}
		opts.ExactFields[lower(name)] = fn
	}
}

// WithFieldPattern registers a substring field-name mapping. Patterns are
// tried in registration order before the built-in ones.
func WithFieldPattern(pattern string, fn FieldFunc) Option {
	return func(opts *Options) {
		if pattern == "" || fn == nil {
			return
		}
		opts.PatternFields = append(opts.PatternFields, FieldPattern{Pattern: lower(pattern), Generate: fn})
	}
}

// NewOptions applies options over the defaults. Implementations should call
// this helper to stay consistent.
func NewOptions(options ...Option) Options {
	cfg := Options{
		Config: DefaultConfig(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Clone returns a copy whose maps and slices can be extended independently.
func (o Options) Clone() Options {
	out := o
	if o.ExactFields != nil {
		out.ExactFields = make(map[string]FieldFunc, len(o.ExactFields))
		for k, v := range o.ExactFields {
			out.ExactFields[k] = v
		}
	}
	out.PatternFields = append([]FieldPattern(nil), o.PatternFields...)
	return out
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
