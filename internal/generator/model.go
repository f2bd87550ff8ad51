package generator

import "github.com/goliatone/go-fixturegen/pkg/schema"

// model generates every field one level deeper while budget remains. At the
// depth limit only required fields are generated, at the same depth, and a
// schema re-entered on that terminal path yields nil.
func (w *walk) model(m *schema.Model, path string, depth int) (any, error) {
	s := m.Schema
	if s == nil || !s.Defined() {
		return nil, unsupported(m.String()+" (undefined)", path)
	}

	inst := schema.NewInstance(s)
	if depth < w.cfg.MaxDepth {
		for _, field := range s.Fields() {
			value, err := w.generate(field.Type, field.Name, joinPath(path, field.Name), depth+1)
			if err != nil {
				return nil, err
			}
			inst.Set(field.Name, value)
		}
		return inst, nil
	}

	if w.terminal[s] {
		w.logger.Debug("cycle broken at depth limit", "field", path, "model", s.Name(), "depth", depth)
		return nil, nil
	}
	w.terminal[s] = true
	defer delete(w.terminal, s)

	w.logger.Debug("depth exhausted, required fields only", "field", path, "model", s.Name(), "depth", depth)
	for _, field := range s.Fields() {
		if !field.Required {
			continue
		}
		value, err := w.generate(field.Type, field.Name, joinPath(path, field.Name), depth)
		if err != nil {
			return nil, err
		}
		inst.Set(field.Name, value)
	}
	return inst, nil
}

// rootModel wraps the inner value generated at the same depth. A root model
// that reaches itself again without descending yields nil.
func (w *walk) rootModel(r *schema.RootModel, path string, depth int) (any, error) {
	if r.Inner == nil {
		return nil, unsupported(r.String()+" (no inner type)", path)
	}
	visit := rootVisit{model: r, depth: depth}
	if w.roots[visit] {
		w.logger.Debug("cycle broken in root model", "field", path, "model", r.Name, "depth", depth)
		return nil, nil
	}
	w.roots[visit] = true
	defer delete(w.roots, visit)

	value, err := w.generate(r.Inner, "", path, depth)
	if err != nil {
		return nil, err
	}
	return &schema.RootInstance{Model: r, Root: value}, nil
}
