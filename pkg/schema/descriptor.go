package schema

import (
	"fmt"
	"strings"
)

// Kind identifies the active variant of a Descriptor.
type Kind int

const (
	KindPrimitive Kind = iota
	KindOptional
	KindUnion
	KindContainer
	KindEnum
	KindAnnotated
	KindModel
	KindRootModel
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindOptional:
		return "optional"
	case KindUnion:
		return "union"
	case KindContainer:
		return "container"
	case KindEnum:
		return "enum"
	case KindAnnotated:
		return "annotated"
	case KindModel:
		return "model"
	case KindRootModel:
		return "root_model"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Descriptor is a type shape. The set of implementations is closed; the
// unexported marker keeps callers from adding variants the generator cannot
// dispatch.
type Descriptor interface {
	Kind() Kind
	String() string
	descriptor()
}

// PrimitiveType enumerates the leaf kinds.
type PrimitiveType string

const (
	TypeString   PrimitiveType = "string"
	TypeInteger  PrimitiveType = "integer"
	TypeFloat    PrimitiveType = "float"
	TypeBoolean  PrimitiveType = "boolean"
	TypeDateTime PrimitiveType = "datetime"
	TypeDate     PrimitiveType = "date"
	TypeUUID     PrimitiveType = "uuid"
	TypeAny      PrimitiveType = "any"
)

// Primitive is a leaf type with generator-defined value ranges.
type Primitive struct {
	Type PrimitiveType
}

func (*Primitive) Kind() Kind { return KindPrimitive }
func (*Primitive) descriptor() {}
func (p *Primitive) String() string { return string(p.Type) }

// Constructors for the primitive leaves.
func String() *Primitive { return &Primitive{Type: TypeString} }
func Integer() *Primitive { return &Primitive{Type: TypeInteger} }
func Float() *Primitive { return &Primitive{Type: TypeFloat} }
func Boolean() *Primitive { return &Primitive{Type: TypeBoolean} }
func DateTime() *Primitive { return &Primitive{Type: TypeDateTime} }
func Date() *Primitive { return &Primitive{Type: TypeDate} }
func UUID() *Primitive { return &Primitive{Type: TypeUUID} }
func Any() *Primitive { return &Primitive{Type: TypeAny} }

// Optional marks a value that may be absent.
type Optional struct {
	Inner Descriptor
}

func (*Optional) Kind() Kind { return KindOptional }
func (*Optional) descriptor() {}
func (o *Optional) String() string {
	return "optional[" + describe(o.Inner) + "]"
}

// NewOptional wraps inner, collapsing nested optionals into one layer.
func NewOptional(inner Descriptor) *Optional {
	if opt, ok := inner.(*Optional); ok {
		return opt
	}
	return &Optional{Inner: inner}
}

// Union is a choice between listed variants. A Union never holds a bare
// Optional; use NewUnion to keep that invariant.
type Union struct {
	Variants []Descriptor
}

func (*Union) Kind() Kind { return KindUnion }
func (*Union) descriptor() {}
func (u *Union) String() string {
	parts := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		parts[i] = describe(v)
	}
	return "union[" + strings.Join(parts, ",") + "]"
}

// NewUnion builds a union from variants. Optional variants are unwrapped and
// the union is returned wrapped in a single Optional instead. A single
// remaining variant is returned as-is.
func NewUnion(variants ...Descriptor) Descriptor {
	flat := make([]Descriptor, 0, len(variants))
	optional := false
	for _, variant := range variants {
		if variant == nil {
			continue
		}
		if opt, ok := variant.(*Optional); ok {
			optional = true
			variant = opt.Inner
		}
		if nested, ok := variant.(*Union); ok {
			flat = append(flat, nested.Variants...)
			continue
		}
		flat = append(flat, variant)
	}

	var out Descriptor
	switch len(flat) {
	case 0:
		out = Any()
	case 1:
		out = flat[0]
	default:
		out = &Union{Variants: flat}
	}
	if optional {
		return NewOptional(out)
	}
	return out
}

// ContainerKind distinguishes list, set and map containers.
type ContainerKind string

const (
	ContainerList ContainerKind = "list"
	ContainerSet  ContainerKind = "set"
	ContainerMap  ContainerKind = "map"
)

// Container is a list, set or map. Lists and sets use Item; maps use Key and
// Value.
type Container struct {
	Container ContainerKind
	Item      Descriptor
	Key       Descriptor
	Value     Descriptor
}

func (*Container) Kind() Kind { return KindContainer }
func (*Container) descriptor() {}
func (c *Container) String() string {
	if c.Container == ContainerMap {
		return "map[" + describe(c.Key) + "," + describe(c.Value) + "]"
	}
	return string(c.Container) + "[" + describe(c.Item) + "]"
}

// ListOf returns a list container. A nil item defaults to string.
func ListOf(item Descriptor) *Container {
	return &Container{Container: ContainerList, Item: orString(item)}
}

// SetOf returns a set container. A nil item defaults to string.
func SetOf(item Descriptor) *Container {
	return &Container{Container: ContainerSet, Item: orString(item)}
}

// MapOf returns a map container with string keys.
func MapOf(value Descriptor) *Container {
	return &Container{Container: ContainerMap, Key: String(), Value: orString(value)}
}

// Enum holds a fixed, ordered value set.
type Enum struct {
	Name   string
	Values []any
}

func (*Enum) Kind() Kind { return KindEnum }
func (*Enum) descriptor() {}
func (e *Enum) String() string {
	if e.Name != "" {
		return "enum " + e.Name
	}
	return fmt.Sprintf("enum%v", e.Values)
}

// NewEnum copies values into an Enum descriptor.
func NewEnum(name string, values ...any) *Enum {
	return &Enum{Name: name, Values: append([]any(nil), values...)}
}

// Constraints carries length bounds attached to an annotated type.
type Constraints struct {
	MinLength *int
	MaxLength *int
}

// Annotated attaches constraints to a base type.
type Annotated struct {
	Base        Descriptor
	Constraints Constraints
}

func (*Annotated) Kind() Kind { return KindAnnotated }
func (*Annotated) descriptor() {}
func (a *Annotated) String() string {
	return "annotated[" + describe(a.Base) + "]"
}

// ConstrainedString returns a string annotated with optional length bounds.
// Negative values leave the bound unset.
func ConstrainedString(minLength, maxLength int) *Annotated {
	a := &Annotated{Base: String()}
	if minLength >= 0 {
		v := minLength
		a.Constraints.MinLength = &v
	}
	if maxLength >= 0 {
		v := maxLength
		a.Constraints.MaxLength = &v
	}
	return a
}

// Model references a model schema by pointer so cyclic schemas share one
// field table.
type Model struct {
	Schema *ModelSchema
}

func (*Model) Kind() Kind { return KindModel }
func (*Model) descriptor() {}
func (m *Model) String() string {
	if m.Schema == nil {
		return "model"
	}
	return "model " + m.Schema.Name()
}

// ModelOf returns a descriptor referencing s.
func ModelOf(s *ModelSchema) *Model {
	return &Model{Schema: s}
}

// RootModel wraps a single unnamed inner value. Inner may be assigned after
// construction while a loader resolves cycles.
type RootModel struct {
	Name  string
	Inner Descriptor
}

func (*RootModel) Kind() Kind { return KindRootModel }
func (*RootModel) descriptor() {}
func (r *RootModel) String() string {
	return "root " + r.Name
}

// NewRootModel returns a root model wrapping inner.
func NewRootModel(name string, inner Descriptor) *RootModel {
	return &RootModel{Name: name, Inner: inner}
}

// Opaque names a special type the structural handlers do not understand
// (URL, email, secret markers and similar).
type Opaque struct {
	Name string
}

func (*Opaque) Kind() Kind { return KindOpaque }
func (*Opaque) descriptor() {}
func (o *Opaque) String() string { return "opaque " + o.Name }

// NewOpaque returns an opaque descriptor.
func NewOpaque(name string) *Opaque {
	return &Opaque{Name: name}
}

func orString(d Descriptor) Descriptor {
	if d == nil {
		return String()
	}
	return d
}

func describe(d Descriptor) string {
	if d == nil {
		return "<nil>"
	}
	return d.String()
}
