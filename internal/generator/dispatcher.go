package generator

import (
	"log/slog"

	pkggen "github.com/goliatone/go-fixturegen/pkg/generator"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// Engine implements pkggen.Generator. It is immutable after New.
type Engine struct {
	opts    pkggen.Options
	cfg     pkggen.Config
	logger  *slog.Logger
	overlay *Overlay
}

var _ pkggen.Generator = (*Engine)(nil)

// New constructs an Engine from resolved options.
func New(opts pkggen.Options) *Engine {
	cfg := opts.Config
	if cfg.Now == nil {
		cfg.Now = pkggen.DefaultConfig().Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = pkggen.NewOptions().Logger
	}
	return &Engine{
		opts:    opts,
		cfg:     cfg,
		logger:  logger,
		overlay: NewOverlay(cfg, opts.ExactFields, opts.PatternFields),
	}
}

// Options returns the options the engine was built with.
func (e *Engine) Options() pkggen.Options {
	return e.opts.Clone()
}

// With returns a new engine with extra options applied.
func (e *Engine) With(options ...pkggen.Option) pkggen.Generator {
	next := e.opts.Clone()
	for _, opt := range options {
		if opt != nil {
			opt(&next)
		}
	}
	return New(next)
}

// Generate dispatches typ. A nil src draws from a freshly seeded source.
func (e *Engine) Generate(src *pkggen.Source, typ schema.Descriptor, fieldName string, depth int) (any, error) {
	if src == nil {
		src = pkggen.NewRandomSource()
	}
	w := &walk{
		Engine:   e,
		src:      src,
		terminal: make(map[*schema.ModelSchema]bool),
		roots:    make(map[rootVisit]bool),
	}
	return w.generate(typ, fieldName, fieldName, depth)
}

// walk is the per-call state: the random source and the cycle guards for
// the current recursion path.
type walk struct {
	*Engine
	src      *pkggen.Source
	terminal map[*schema.ModelSchema]bool
	roots    map[rootVisit]bool
}

type rootVisit struct {
	model *schema.RootModel
	depth int
}

// generate applies the dispatch precedence. name is the field name used by
// the overlay; path is the dotted location used in errors and logs.
func (w *walk) generate(typ schema.Descriptor, name, path string, depth int) (any, error) {
	switch t := typ.(type) {
	case nil:
		return nil, unsupported("<nil>", path)
	case *schema.Optional:
		return w.generate(t.Inner, name, path, depth)
	case *schema.Union:
		return w.union(t, path, depth)
	case *schema.Annotated:
		return w.annotated(t, path, depth)
	}

	if name != "" && w.cfg.SmartFields && IsBareString(typ) {
		if value, rule, ok := w.overlay.Lookup(w.src, name); ok {
			w.logger.Debug("field overlay applied", "field", path, "rule", rule)
			return value, nil
		}
	}

	switch t := typ.(type) {
	case *schema.Primitive:
		return w.primitive(t, path)
	case *schema.Container:
		return w.container(t, path, depth)
	case *schema.Enum:
		return w.enum(t, path)
	case *schema.RootModel:
		return w.rootModel(t, path, depth)
	case *schema.Model:
		return w.model(t, path, depth)
	case *schema.Opaque:
		return w.fallback(t, path)
	}
	return nil, unsupported(typ.String(), path)
}

func (w *walk) union(u *schema.Union, path string, depth int) (any, error) {
	if len(u.Variants) == 0 {
		return nil, unsupported(u.String(), path)
	}
	variant := u.Variants[w.src.IntN(len(u.Variants))]
	return w.generate(variant, "", path, depth)
}

func unsupported(typ, path string) error {
	return &pkggen.UnsupportedTypeError{Type: typ, Field: path}
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
