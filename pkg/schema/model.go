package schema

import (
	"errors"
	"fmt"
)

// FieldSpec declares one field of a model.
type FieldSpec struct {
	Name     string
	Type     Descriptor
	Required bool
}

// NewField builds a FieldSpec, deriving Required from the absence of an
// Optional wrapper.
func NewField(name string, typ Descriptor) FieldSpec {
	_, optional := typ.(*Optional)
	return FieldSpec{Name: name, Type: typ, Required: !optional}
}

// ModelSchema is a named, insertion-ordered field table. It is mutable only
// until Define seals it.
type ModelSchema struct {
	name    string
	fields  []FieldSpec
	index   map[string]int
	defined bool
}

// Declare allocates an empty schema that can be referenced (for example by
// its own fields) before Define fills it in.
func Declare(name string) *ModelSchema {
	return &ModelSchema{name: name, index: map[string]int{}}
}

// NewModelSchema declares and defines a schema in one step.
func NewModelSchema(name string, fields ...FieldSpec) (*ModelSchema, error) {
	s := Declare(name)
	if err := s.Define(fields...); err != nil {
		return nil, err
	}
	return s, nil
}

// MustModelSchema panics when NewModelSchema fails. Useful for fixtures.
func MustModelSchema(name string, fields ...FieldSpec) *ModelSchema {
	s, err := NewModelSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Define sets the field table and seals the schema.
func (s *ModelSchema) Define(fields ...FieldSpec) error {
	if s == nil {
		return errors.New("schema: model schema is nil")
	}
	if s.defined {
		return fmt.Errorf("schema: model %q already defined", s.name)
	}
	table := make([]FieldSpec, 0, len(fields))
	index := make(map[string]int, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return fmt.Errorf("schema: model %q: field name is required", s.name)
		}
		if field.Type == nil {
			return fmt.Errorf("schema: model %q: field %q has no type", s.name, field.Name)
		}
		if _, dup := index[field.Name]; dup {
			return fmt.Errorf("schema: model %q: duplicate field %q", s.name, field.Name)
		}
		index[field.Name] = len(table)
		table = append(table, field)
	}
	s.fields = table
	s.index = index
	s.defined = true
	return nil
}

// Name returns the schema name.
func (s *ModelSchema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Defined reports whether Define has been called.
func (s *ModelSchema) Defined() bool {
	return s != nil && s.defined
}

// Len returns the number of declared fields.
func (s *ModelSchema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Fields returns a copy of the field table in declaration order.
func (s *ModelSchema) Fields() []FieldSpec {
	if s == nil {
		return nil
	}
	return append([]FieldSpec(nil), s.fields...)
}

// Field looks up a field by name.
func (s *ModelSchema) Field(name string) (FieldSpec, bool) {
	if s == nil {
		return FieldSpec{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[i], true
}

// Required returns the names of required fields in declaration order.
func (s *ModelSchema) Required() []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, field := range s.fields {
		if field.Required {
			out = append(out, field.Name)
		}
	}
	return out
}
