package generator

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	pkggen "github.com/goliatone/go-fixturegen/pkg/generator"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

var fixedNow = time.Date(2024, time.March, 10, 8, 30, 0, 0, time.UTC)

func newTestEngine(options ...pkggen.Option) *Engine {
	base := []pkggen.Option{pkggen.WithClock(func() time.Time { return fixedNow })}
	return New(pkggen.NewOptions(append(base, options...)...))
}

func mustGenerate(t *testing.T, e *Engine, seed uint64, typ schema.Descriptor, field string, depth int) any {
	t.Helper()
	value, err := e.Generate(pkggen.NewSource(seed), typ, field, depth)
	if err != nil {
		t.Fatalf("generate %s: %v", typ, err)
	}
	return value
}

func TestPrimitiveDefaults(t *testing.T) {
	e := newTestEngine()

	for seed := uint64(0); seed < 50; seed++ {
		n := mustGenerate(t, e, seed, schema.Integer(), "", 0).(int)
		if n < 1 || n > 1000 {
			t.Fatalf("integer %d outside [1,1000]", n)
		}
		f := mustGenerate(t, e, seed, schema.Float(), "", 0).(float64)
		if f < 1.0 || f > 100.0 {
			t.Fatalf("float %v outside [1,100]", f)
		}
		s := mustGenerate(t, e, seed, schema.String(), "", 0).(string)
		if s == "" || len(s) > 20 {
			t.Fatalf("string %q should be 1..20 chars", s)
		}
		if _, ok := mustGenerate(t, e, seed, schema.Boolean(), "", 0).(bool); !ok {
			t.Fatalf("boolean should produce a bool")
		}
	}

	if got := mustGenerate(t, e, 1, schema.DateTime(), "", 0); got != "2024-03-11T08:30:00Z" {
		t.Fatalf("datetime = %v", got)
	}
	if got := mustGenerate(t, e, 1, schema.Date(), "", 0); got != "2024-03-11" {
		t.Fatalf("date = %v", got)
	}

	id, err := uuid.Parse(mustGenerate(t, e, 1, schema.UUID(), "", 0).(string))
	if err != nil {
		t.Fatalf("uuid parse: %v", err)
	}
	if id.Version() != 4 {
		t.Fatalf("uuid version = %d, want 4", id.Version())
	}
}

func TestAnyProducesWordIntOrFloat(t *testing.T) {
	e := newTestEngine()
	for seed := uint64(0); seed < 30; seed++ {
		switch v := mustGenerate(t, e, seed, schema.Any(), "", 0).(type) {
		case string, int, float64:
		default:
			t.Fatalf("unexpected any value %T", v)
		}
	}
}

func TestOptionalKeepsFieldName(t *testing.T) {
	e := newTestEngine()
	got := mustGenerate(t, e, 7, schema.NewOptional(schema.String()), "email", 0).(string)
	if !strings.Contains(got, "@") {
		t.Fatalf("optional email field should use the overlay, got %q", got)
	}
}

func TestConstrainedStringSkipsOverlay(t *testing.T) {
	e := newTestEngine()
	typ := schema.ConstrainedString(5, 8)
	for seed := uint64(0); seed < 20; seed++ {
		got := mustGenerate(t, e, seed, typ, "email", 0).(string)
		if len(got) < 5 || len(got) > 8 {
			t.Fatalf("length %d outside [5,8]", len(got))
		}
		for _, r := range got {
			if !unicode.IsLetter(r) {
				t.Fatalf("constrained string %q should hold letters only", got)
			}
		}
	}
}

func TestConstrainedStringBounds(t *testing.T) {
	e := newTestEngine()

	exact := mustGenerate(t, e, 3, schema.ConstrainedString(6, 6), "", 0).(string)
	if len(exact) != 6 {
		t.Fatalf("length = %d, want 6", len(exact))
	}

	inverted := mustGenerate(t, e, 3, schema.ConstrainedString(10, 2), "", 0).(string)
	if len(inverted) != 1 {
		t.Fatalf("contradictory bounds should give length 1, got %q", inverted)
	}

	defaults := mustGenerate(t, e, 3, schema.ConstrainedString(-1, -1), "", 0).(string)
	if len(defaults) < 1 || len(defaults) > 20 {
		t.Fatalf("default bounds length = %d", len(defaults))
	}
}

func TestAnnotatedNonStringRecursesOnBase(t *testing.T) {
	e := newTestEngine()
	typ := &schema.Annotated{Base: schema.Integer()}
	if _, ok := mustGenerate(t, e, 1, typ, "name", 0).(int); !ok {
		t.Fatalf("annotated integer should produce an int")
	}
}

func TestOverlayPrecedence(t *testing.T) {
	e := newTestEngine(
		pkggen.WithFieldGenerator("User_Email", func(*pkggen.Source) any { return "exact" }),
		pkggen.WithFieldPattern("email", func(*pkggen.Source) any { return "pattern" }),
	)

	cases := map[string]string{
		"user_email": "exact",
		"USER_EMAIL": "exact",
		"work_email": "pattern",
	}
	for field, want := range cases {
		if got := mustGenerate(t, e, 1, schema.String(), field, 0); got != want {
			t.Fatalf("%s = %v, want %s", field, got, want)
		}
	}
}

func TestOverlayBuiltinRules(t *testing.T) {
	e := newTestEngine()

	orderID := mustGenerate(t, e, 1, schema.String(), "order_id", 0).(string)
	for _, r := range orderID {
		if !unicode.IsDigit(r) {
			t.Fatalf("order_id should be numeric, got %q", orderID)
		}
	}

	created := mustGenerate(t, e, 1, schema.String(), "created_at", 0).(string)
	ts, err := time.Parse("2006-01-02T15:04:05", created)
	if err != nil {
		t.Fatalf("created_at %q: %v", created, err)
	}
	if ts.After(fixedNow) || fixedNow.Sub(ts) > 366*24*time.Hour {
		t.Fatalf("created_at %s outside the past year", ts)
	}

	sku := mustGenerate(t, e, 1, schema.String(), "sku", 0).(string)
	if len(sku) != 8 || sku[3] != '-' {
		t.Fatalf("sku = %q", sku)
	}
}

func TestOverlayIgnoresNonStringFields(t *testing.T) {
	e := newTestEngine()
	if _, ok := mustGenerate(t, e, 1, schema.Integer(), "email", 0).(int); !ok {
		t.Fatalf("integer field named email should stay an int")
	}
}

func TestSmartFieldsDisabled(t *testing.T) {
	e := newTestEngine(pkggen.WithSmartFields(false))
	got := mustGenerate(t, e, 7, schema.String(), "email", 0).(string)
	if strings.Contains(got, "@") {
		t.Fatalf("overlay should be off, got %q", got)
	}
}

func TestUnionPicksListedVariant(t *testing.T) {
	e := newTestEngine()
	typ := schema.NewUnion(schema.Integer(), schema.Boolean())
	seen := map[string]bool{}
	for seed := uint64(0); seed < 40; seed++ {
		switch mustGenerate(t, e, seed, typ, "", 0).(type) {
		case int:
			seen["int"] = true
		case bool:
			seen["bool"] = true
		default:
			t.Fatalf("value outside union variants")
		}
	}
	if !seen["int"] || !seen["bool"] {
		t.Fatalf("both variants should be reachable, saw %v", seen)
	}
}

func TestUnionWeightsListedVariantsEqually(t *testing.T) {
	e := newTestEngine()
	typ := schema.NewUnion(schema.Integer(), schema.NewEnum("Letter", "a", "b", "c", "d"))

	const runs = 400
	ints := 0
	for seed := uint64(0); seed < runs; seed++ {
		switch v := mustGenerate(t, e, seed, typ, "", 0).(type) {
		case int:
			ints++
		case string:
			if !strings.Contains("abcd", v) || len(v) != 1 {
				t.Fatalf("enum variant produced %q", v)
			}
		default:
			t.Fatalf("value outside union variants: %#v", v)
		}
	}
	if ints < runs*2/5 || ints > runs*3/5 {
		t.Fatalf("integer variant picked %d of %d times, want close to half", ints, runs)
	}
}

func TestEnumMembership(t *testing.T) {
	e := newTestEngine()
	typ := schema.NewEnum("Status", "available", "pending", "sold")
	for seed := uint64(0); seed < 30; seed++ {
		got := mustGenerate(t, e, seed, typ, "status", 0)
		found := false
		for _, v := range typ.Values {
			if v == got {
				found = true
			}
		}
		if !found {
			t.Fatalf("%v is not a declared enum value", got)
		}
	}
}

func TestUnsupportedTypes(t *testing.T) {
	e := newTestEngine()
	cases := []schema.Descriptor{
		schema.NewEnum("Empty"),
		schema.NewOpaque("Decimal"),
		schema.ModelOf(schema.Declare("Pending")),
	}
	for _, typ := range cases {
		_, err := e.Generate(pkggen.NewSource(1), typ, "price", 0)
		if !errors.Is(err, pkggen.ErrUnsupportedType) {
			t.Fatalf("%s: expected ErrUnsupportedType, got %v", typ, err)
		}
		var typed *pkggen.UnsupportedTypeError
		if !errors.As(err, &typed) || typed.Field != "price" {
			t.Fatalf("%s: expected field path in error, got %v", typ, err)
		}
	}
}

func TestUnsupportedTypeReportsNestedPath(t *testing.T) {
	e := newTestEngine()
	inner := schema.MustModelSchema("Inner", schema.NewField("amount", schema.NewOpaque("Decimal")))
	outer := schema.MustModelSchema("Outer", schema.NewField("inner", schema.ModelOf(inner)))

	_, err := e.Generate(pkggen.NewSource(1), schema.ModelOf(outer), "", 0)
	var typed *pkggen.UnsupportedTypeError
	if !errors.As(err, &typed) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if typed.Field != "inner.amount" {
		t.Fatalf("field path = %q, want inner.amount", typed.Field)
	}
}

func TestOpaqueFallback(t *testing.T) {
	e := newTestEngine()

	url := mustGenerate(t, e, 1, schema.NewOpaque("HttpUrl"), "", 0).(string)
	if !strings.HasPrefix(url, "http") {
		t.Fatalf("url = %q", url)
	}
	mail := mustGenerate(t, e, 1, schema.NewOpaque("EmailStr"), "", 0).(string)
	if !strings.Contains(mail, "@") {
		t.Fatalf("email = %q", mail)
	}
	payload := mustGenerate(t, e, 1, schema.NewOpaque("Json"), "", 0)
	if diff := cmp.Diff(map[string]any{"example": "data"}, payload); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
	ip := mustGenerate(t, e, 1, schema.NewOpaque("IPv4Address"), "", 0).(string)
	if strings.Count(ip, ".") != 3 {
		t.Fatalf("ipv4 = %q", ip)
	}
}

func TestSameSeedSameOutput(t *testing.T) {
	e := newTestEngine()
	pet := schema.MustModelSchema("Pet",
		schema.NewField("id", schema.UUID()),
		schema.NewField("name", schema.String()),
		schema.NewField("tags", schema.ListOf(schema.String())),
		schema.NewField("meta", schema.MapOf(schema.Any())),
		schema.NewField("status", schema.NewEnum("Status", "a", "b", "c")),
	)

	encode := func(seed uint64) string {
		value := mustGenerate(t, e, seed, schema.ModelOf(pet), "", 0)
		raw, err := json.Marshal(value)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return string(raw)
	}

	if a, b := encode(99), encode(99); a != b {
		t.Fatalf("same seed produced different output:\n%s\n%s", a, b)
	}
	if encode(99) == encode(100) {
		t.Fatalf("different seeds should diverge")
	}
}

func TestEngineWithLeavesOriginalUntouched(t *testing.T) {
	e := newTestEngine()
	quiet := e.With(pkggen.WithSmartFields(false))

	if !e.Options().Config.SmartFields {
		t.Fatalf("original engine should keep the overlay on")
	}
	if quiet.Options().Config.SmartFields {
		t.Fatalf("derived engine should have the overlay off")
	}
}

func TestCustomPatternFieldsIgnoreCase(t *testing.T) {
	opts := pkggen.NewOptions(pkggen.WithClock(func() time.Time { return fixedNow }))
	opts.PatternFields = append(opts.PatternFields, pkggen.FieldPattern{
		Pattern:  "Email",
		Generate: func(*pkggen.Source) any { return "custom@example.test" },
	})
	e := New(opts)

	if got := mustGenerate(t, e, 1, schema.String(), "Work_Email", 0); got != "custom@example.test" {
		t.Fatalf("custom pattern should match regardless of case, got %v", got)
	}
}
