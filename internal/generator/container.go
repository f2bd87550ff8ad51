package generator

import "github.com/goliatone/go-fixturegen/pkg/schema"

func (w *walk) container(c *schema.Container, path string, depth int) (any, error) {
	if depth >= w.cfg.MaxDepth {
		w.logger.Debug("depth exhausted, empty container", "field", path, "type", c.String(), "depth", depth)
		if c.Container == schema.ContainerMap {
			return map[string]any{}, nil
		}
		return []any{}, nil
	}

	n := max(w.src.IntRange(w.cfg.MinElements, w.cfg.MaxElements), 0)
	itemPath := path + "[]"

	switch c.Container {
	case schema.ContainerList:
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			value, err := w.generate(c.Item, "", itemPath, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil

	case schema.ContainerSet:
		out := make([]any, 0, n)
		seen := make(map[any]struct{}, n)
		for i := 0; i < n; i++ {
			value, err := w.generate(c.Item, "", itemPath, depth+1)
			if err != nil {
				return nil, err
			}
			if isScalar(value) {
				if _, dup := seen[value]; dup {
					continue
				}
				seen[value] = struct{}{}
			}
			out = append(out, value)
		}
		return out, nil

	case schema.ContainerMap:
		out := make(map[string]any, n)
		for i := 0; i < n; i++ {
			value, err := w.generate(c.Value, "", path+"{}", depth+1)
			if err != nil {
				return nil, err
			}
			out[w.src.Faker().Word()] = value
		}
		return out, nil
	}
	return nil, unsupported(c.String(), path)
}

// isScalar reports values that are safe to use as map keys.
func isScalar(v any) bool {
	switch v.(type) {
	case string, int, float64, bool:
		return true
	}
	return false
}
