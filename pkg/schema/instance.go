package schema

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Instance is a generated model value: field name to generated value, in
// insertion order. Values are literals, []any, map[string]any, *Instance,
// *RootInstance, or nil when a recursive path was cut.
type Instance struct {
	schema *ModelSchema
	values *orderedmap.OrderedMap[string, any]
}

// NewInstance returns an empty instance of s.
func NewInstance(s *ModelSchema) *Instance {
	return &Instance{schema: s, values: orderedmap.New[string, any]()}
}

// Schema returns the schema the instance was generated from.
func (i *Instance) Schema() *ModelSchema {
	return i.schema
}

// Set stores a value. Existing keys keep their position.
func (i *Instance) Set(name string, value any) {
	i.values.Set(name, value)
}

// Get returns the value stored for name.
func (i *Instance) Get(name string) (any, bool) {
	return i.values.Get(name)
}

// Has reports whether name is present.
func (i *Instance) Has(name string) bool {
	_, ok := i.values.Get(name)
	return ok
}

// Len returns the number of stored fields.
func (i *Instance) Len() int {
	return i.values.Len()
}

// Keys returns the stored field names in order.
func (i *Instance) Keys() []string {
	keys := make([]string, 0, i.values.Len())
	for pair := i.values.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Range calls fn for each field in order until fn returns false.
func (i *Instance) Range(fn func(name string, value any) bool) {
	for pair := i.values.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// MarshalJSON encodes the fields as a JSON object in field order.
func (i *Instance) MarshalJSON() ([]byte, error) {
	return i.values.MarshalJSON()
}

// MarshalYAML encodes the fields as a YAML mapping in field order.
func (i *Instance) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pair := i.values.Oldest(); pair != nil; pair = pair.Next() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// RootInstance is a generated root model value.
type RootInstance struct {
	Model *RootModel
	Root  any
}

// MarshalJSON encodes the wrapped value.
func (r *RootInstance) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Root)
}

// MarshalYAML encodes the wrapped value.
func (r *RootInstance) MarshalYAML() (any, error) {
	return r.Root, nil
}
