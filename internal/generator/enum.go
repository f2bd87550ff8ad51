package generator

import "github.com/goliatone/go-fixturegen/pkg/schema"

func (w *walk) enum(e *schema.Enum, path string) (any, error) {
	if len(e.Values) == 0 {
		return nil, unsupported(e.String()+" (no values)", path)
	}
	return e.Values[w.src.IntN(len(e.Values))], nil
}
