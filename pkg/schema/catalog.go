package schema

import (
	"errors"
	"fmt"
)

// Operation describes an API operation whose request payload can be
// synthesized.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Payload Descriptor
}

// Catalog is the loader output: named descriptors plus operation payloads,
// both in registration order.
type Catalog struct {
	names      []string
	entries    map[string]Descriptor
	opIDs      []string
	operations map[string]Operation
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		entries:    make(map[string]Descriptor),
		operations: make(map[string]Operation),
	}
}

// Add registers a named descriptor.
func (c *Catalog) Add(name string, d Descriptor) error {
	if name == "" {
		return errors.New("schema: catalog entry name is required")
	}
	if d == nil {
		return fmt.Errorf("schema: catalog entry %q has no descriptor", name)
	}
	if _, exists := c.entries[name]; exists {
		return fmt.Errorf("schema: catalog entry %q already registered", name)
	}
	c.entries[name] = d
	c.names = append(c.names, name)
	return nil
}

// AddOperation registers an operation payload.
func (c *Catalog) AddOperation(op Operation) error {
	if op.ID == "" {
		return errors.New("schema: operation id is required")
	}
	if _, exists := c.operations[op.ID]; exists {
		return fmt.Errorf("schema: operation %q already registered", op.ID)
	}
	c.operations[op.ID] = op
	c.opIDs = append(c.opIDs, op.ID)
	return nil
}

// Lookup returns the descriptor registered under name.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	d, ok := c.entries[name]
	return d, ok
}

// Model returns the model schema registered under name, if the entry is a
// model.
func (c *Catalog) Model(name string) (*ModelSchema, bool) {
	d, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	m, ok := d.(*Model)
	if !ok || m.Schema == nil {
		return nil, false
	}
	return m.Schema, true
}

// Names lists the registered entries in order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Operation returns the operation registered under id.
func (c *Catalog) Operation(id string) (Operation, bool) {
	op, ok := c.operations[id]
	return op, ok
}

// Operations lists operation ids in order.
func (c *Catalog) Operations() []string {
	return append([]string(nil), c.opIDs...)
}
