package generator

import "github.com/goliatone/go-fixturegen/pkg/schema"

func (w *walk) annotated(a *schema.Annotated, path string, depth int) (any, error) {
	if !IsBareString(a.Base) {
		return w.generate(a.Base, "", path, depth)
	}
	return w.constrainedString(a.Constraints, path), nil
}

// constrainedString returns random letters with a length inside the bounds.
// Contradictory bounds fall back to a single letter.
func (w *walk) constrainedString(c schema.Constraints, path string) string {
	lo, hi := w.cfg.MinLength, w.cfg.MaxLength
	if c.MinLength != nil {
		lo = *c.MinLength
	}
	if c.MaxLength != nil {
		hi = *c.MaxLength
	}

	length := 1
	if lo <= hi {
		length = w.src.IntRange(lo, hi)
	} else {
		w.logger.Debug("invalid length constraint, using length 1", "field", path, "min", lo, "max", hi)
	}
	if length <= 0 {
		return ""
	}
	return w.src.Faker().LetterN(uint(length))
}
