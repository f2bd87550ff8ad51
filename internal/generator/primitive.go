package generator

import (
	"strings"

	"github.com/goliatone/go-fixturegen/pkg/schema"
)

const (
	dateTimeLayout = "2006-01-02T15:04:05Z"
	dateLayout     = "2006-01-02"
)

func (w *walk) primitive(p *schema.Primitive, path string) (any, error) {
	switch p.Type {
	case schema.TypeString:
		return w.text(w.cfg.StringMaxLength), nil
	case schema.TypeInteger:
		return w.src.IntRange(w.cfg.IntMin, w.cfg.IntMax), nil
	case schema.TypeFloat:
		return w.src.Float64Range(w.cfg.FloatMin, w.cfg.FloatMax), nil
	case schema.TypeBoolean:
		return w.src.Bool(), nil
	case schema.TypeDateTime:
		return w.cfg.Now().Add(w.cfg.TimeOffset).UTC().Format(dateTimeLayout), nil
	case schema.TypeDate:
		return w.cfg.Now().Add(w.cfg.TimeOffset).UTC().Format(dateLayout), nil
	case schema.TypeUUID:
		return w.src.UUID(), nil
	case schema.TypeAny:
		switch w.src.IntN(3) {
		case 0:
			return w.src.Faker().Word(), nil
		case 1:
			return w.src.IntRange(w.cfg.IntMin, w.cfg.IntMax), nil
		default:
			return w.src.Float64Range(w.cfg.FloatMin, w.cfg.FloatMax), nil
		}
	}
	return nil, unsupported(p.String(), path)
}

// text builds a short sentence of words no longer than limit characters.
func (w *walk) text(limit int) string {
	return sentenceText(w.src.Faker().Word, limit)
}

// sentenceText joins words into sentences until limit is reached. The
// result is never empty and never longer than limit.
func sentenceText(word func() string, limit int) string {
	if limit < 1 {
		limit = 1
	}
	var b strings.Builder
	startSentence := true
	for {
		next := word()
		if next == "" {
			next = "lorem"
		}
		if startSentence {
			next = strings.ToUpper(next[:1]) + next[1:]
		}
		sep := ""
		if b.Len() > 0 {
			sep = " "
		}
		if b.Len()+len(sep)+len(next)+1 > limit {
			if b.Len() == 0 {
				if len(next) > limit {
					next = next[:limit]
				}
				return next
			}
			break
		}
		b.WriteString(sep)
		b.WriteString(next)
		startSentence = false
	}
	b.WriteByte('.')
	return b.String()
}
