package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	pkggen "github.com/goliatone/go-fixturegen/pkg/generator"
)

// Overlay maps semantically named string fields to realistic values. An
// exact lowercase match wins over the first matching substring pattern.
type Overlay struct {
	exact    map[string]pkggen.FieldFunc
	patterns []pkggen.FieldPattern
}

// NewOverlay builds the built-in tables and layers the caller's mappings on
// top. Custom patterns are tried before the built-in ones.
func NewOverlay(cfg pkggen.Config, exact map[string]pkggen.FieldFunc, patterns []pkggen.FieldPattern) *Overlay {
	o := &Overlay{exact: builtinExact(cfg)}
	for name, fn := range exact {
		o.exact[strings.ToLower(name)] = fn
	}
	for _, p := range patterns {
		if p.Pattern == "" || p.Generate == nil {
			continue
		}
		p.Pattern = strings.ToLower(p.Pattern)
		o.patterns = append(o.patterns, p)
	}
	o.patterns = append(o.patterns, builtinPatterns(cfg)...)
	return o
}

// Lookup returns the overlay value for fieldName and the rule that matched.
func (o *Overlay) Lookup(src *pkggen.Source, fieldName string) (any, string, bool) {
	if o == nil || fieldName == "" {
		return nil, "", false
	}
	key := strings.ToLower(fieldName)
	if fn, ok := o.exact[key]; ok {
		return fn(src), key, true
	}
	for _, p := range o.patterns {
		if strings.Contains(key, p.Pattern) {
			return p.Generate(src), "*" + p.Pattern + "*", true
		}
	}
	return nil, "", false
}

func builtinExact(cfg pkggen.Config) map[string]pkggen.FieldFunc {
	name := func(src *pkggen.Source) any { return src.Faker().Name() }
	firstName := func(src *pkggen.Source) any { return src.Faker().FirstName() }
	phone := func(src *pkggen.Source) any { return src.Faker().Phone() }
	zip := func(src *pkggen.Source) any { return src.Faker().Zip() }
	company := func(src *pkggen.Source) any { return src.Faker().Company() }
	job := func(src *pkggen.Source) any { return src.Faker().JobTitle() }
	url := func(src *pkggen.Source) any { return src.Faker().URL() }

	return map[string]pkggen.FieldFunc{
		"first_name":   firstName,
		"last_name":    func(src *pkggen.Source) any { return src.Faker().LastName() },
		"middle_name":  firstName,
		"full_name":    name,
		"name":         name,
		"email":        email,
		"phone":        phone,
		"phone_number": phone,
		"address":      address,
		"street":       func(src *pkggen.Source) any { return src.Faker().Street() },
		"city":         func(src *pkggen.Source) any { return src.Faker().City() },
		"country":      func(src *pkggen.Source) any { return src.Faker().Country() },
		"postal_code":  zip,
		"zip_code":     zip,
		"company":      company,
		"company_name": company,
		"job_title":    job,
		"position":     job,
		"description":  textOf(200),
		"comment":      textOf(100),
		"note":         textOf(100),
		"title":        sentenceOf(4),
		"url":          url,
		"website":      url,
		"domain":       func(src *pkggen.Source) any { return src.Faker().DomainName() },
		"birth_date": func(src *pkggen.Source) any {
			days := src.IntRange(18*365, 80*365)
			return cfg.Now().AddDate(0, 0, -days).Format(dateLayout)
		},
		"created_at": pastTimestamp(cfg, 365*24*time.Hour),
		"updated_at": pastTimestamp(cfg, 30*24*time.Hour),
		"color":      func(src *pkggen.Source) any { return src.Faker().Color() },
		"hex_color":  func(src *pkggen.Source) any { return src.Faker().HexColor() },
		"price":      decimalOf(999.99),
		"amount":     decimalOf(9999.99),
		"currency":   func(src *pkggen.Source) any { return src.Faker().CurrencyShort() },
		"username":   func(src *pkggen.Source) any { return src.Faker().Username() },
		"password":   password,
		"token":      func(src *pkggen.Source) any { return src.UUID() },
		"code":       bothify("??###"),
		"sku":        bothify("???-####"),
	}
}

func builtinPatterns(cfg pkggen.Config) []pkggen.FieldPattern {
	return []pkggen.FieldPattern{
		{Pattern: "name", Generate: func(src *pkggen.Source) any { return src.Faker().Name() }},
		{Pattern: "email", Generate: email},
		{Pattern: "phone", Generate: func(src *pkggen.Source) any { return src.Faker().Phone() }},
		{Pattern: "address", Generate: address},
		{Pattern: "company", Generate: func(src *pkggen.Source) any { return src.Faker().Company() }},
		{Pattern: "url", Generate: func(src *pkggen.Source) any { return src.Faker().URL() }},
		{Pattern: "description", Generate: textOf(150)},
		{Pattern: "title", Generate: sentenceOf(3)},
		{Pattern: "date", Generate: func(src *pkggen.Source) any {
			days := src.IntRange(0, 30*365)
			return cfg.Now().AddDate(0, 0, -days).Format(dateLayout)
		}},
		{Pattern: "time", Generate: func(src *pkggen.Source) any {
			return fmt.Sprintf("%02d:%02d:%02d", src.IntN(24), src.IntN(60), src.IntN(60))
		}},
		{Pattern: "id", Generate: func(src *pkggen.Source) any { return strconv.Itoa(src.IntRange(1, 999999)) }},
		{Pattern: "code", Generate: bothify("??###")},
		{Pattern: "number", Generate: func(src *pkggen.Source) any { return strconv.Itoa(src.IntRange(1, 9999)) }},
	}
}

func email(src *pkggen.Source) any {
	return src.Faker().Email()
}

func address(src *pkggen.Source) any {
	return src.Faker().Address().Address
}

// textOf returns sentences of words up to limit characters.
func textOf(limit int) pkggen.FieldFunc {
	return func(src *pkggen.Source) any {
		return sentenceText(src.Faker().Word, limit)
	}
}

func sentenceOf(words int) pkggen.FieldFunc {
	return func(src *pkggen.Source) any {
		parts := make([]string, words)
		for i := range parts {
			parts[i] = src.Faker().Word()
		}
		s := strings.Join(parts, " ")
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:] + "."
	}
}

func pastTimestamp(cfg pkggen.Config, window time.Duration) pkggen.FieldFunc {
	return func(src *pkggen.Source) any {
		back := time.Duration(src.IntRange(0, int(window/time.Second))) * time.Second
		return cfg.Now().Add(-back).UTC().Format("2006-01-02T15:04:05")
	}
}

func decimalOf(limit float64) pkggen.FieldFunc {
	return func(src *pkggen.Source) any {
		return strconv.FormatFloat(src.Float64Range(0.01, limit), 'f', 2, 64)
	}
}

func bothify(pattern string) pkggen.FieldFunc {
	return func(src *pkggen.Source) any {
		return src.Faker().Lexify(src.Faker().Numerify(pattern))
	}
}
