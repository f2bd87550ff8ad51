package generator

import (
	"strings"

	pkggen "github.com/goliatone/go-fixturegen/pkg/generator"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

type opaqueRule struct {
	keyword  string
	generate func(src *pkggen.Source) any
}

// opaqueRules are matched in order against the lowercase opaque type name.
var opaqueRules = []opaqueRule{
	{"url", func(src *pkggen.Source) any { return src.Faker().URL() }},
	{"email", func(src *pkggen.Source) any { return src.Faker().Email() }},
	{"json", func(*pkggen.Source) any { return map[string]any{"example": "data"} }},
	{"path", filePath},
	{"secret", password},
	{"ipv4", func(src *pkggen.Source) any { return src.Faker().IPv4Address() }},
	{"ipv6", func(src *pkggen.Source) any { return src.Faker().IPv6Address() }},
}

func (w *walk) fallback(o *schema.Opaque, path string) (any, error) {
	name := strings.ToLower(o.Name)
	for _, rule := range opaqueRules {
		if strings.Contains(name, rule.keyword) {
			return rule.generate(w.src), nil
		}
	}
	return nil, unsupported(o.String(), path)
}

func filePath(src *pkggen.Source) any {
	f := src.Faker()
	return "/" + f.Word() + "/" + f.Word() + "." + f.FileExtension()
}

func password(src *pkggen.Source) any {
	return src.Faker().Password(true, true, true, true, false, 12)
}
