package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fixturegen/pkg/schema"
)

func TestNewFieldDerivesRequired(t *testing.T) {
	required := schema.NewField("id", schema.Integer())
	if !required.Required {
		t.Fatalf("plain field should be required")
	}
	optional := schema.NewField("nickname", schema.NewOptional(schema.String()))
	if optional.Required {
		t.Fatalf("optional field should not be required")
	}
}

func TestNewUnionHoistsOptional(t *testing.T) {
	got := schema.NewUnion(schema.String(), schema.NewOptional(schema.Integer()))

	opt, ok := got.(*schema.Optional)
	if !ok {
		t.Fatalf("expected optional wrapper, got %s", got)
	}
	union, ok := opt.Inner.(*schema.Union)
	if !ok {
		t.Fatalf("expected union inside optional, got %s", opt.Inner)
	}
	for _, variant := range union.Variants {
		if variant.Kind() == schema.KindOptional {
			t.Fatalf("union must not hold a bare optional variant")
		}
	}
	if len(union.Variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(union.Variants))
	}
}

func TestNewUnionSingleVariant(t *testing.T) {
	got := schema.NewUnion(schema.Integer())
	if got.Kind() != schema.KindPrimitive {
		t.Fatalf("single variant union = %s, want primitive", got)
	}
}

func TestModelSchemaDefine(t *testing.T) {
	node := schema.Declare("Node")
	err := node.Define(
		schema.NewField("value", schema.Integer()),
		schema.NewField("child", schema.NewOptional(schema.ModelOf(node))),
	)
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	if err := node.Define(); err == nil {
		t.Fatalf("expected error when redefining a sealed schema")
	}
	if diff := cmp.Diff([]string{"value"}, node.Required()); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	child, ok := node.Field("child")
	if !ok {
		t.Fatalf("child field missing")
	}
	opt := child.Type.(*schema.Optional)
	if opt.Inner.(*schema.Model).Schema != node {
		t.Fatalf("child should reference the same schema")
	}
}

func TestModelSchemaRejectsDuplicates(t *testing.T) {
	_, err := schema.NewModelSchema("Dup",
		schema.NewField("a", schema.String()),
		schema.NewField("a", schema.Integer()),
	)
	if err == nil || !strings.Contains(err.Error(), "duplicate field") {
		t.Fatalf("expected duplicate field error, got %v", err)
	}
}

func TestInstanceKeepsOrder(t *testing.T) {
	s := schema.MustModelSchema("Pet",
		schema.NewField("name", schema.String()),
		schema.NewField("age", schema.Integer()),
	)
	inst := schema.NewInstance(s)
	inst.Set("zeta", 1)
	inst.Set("alpha", 2)
	inst.Set("zeta", 3)

	if diff := cmp.Diff([]string{"zeta", "alpha"}, inst.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	payload, err := json.Marshal(inst)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `{"zeta":3,"alpha":2}` {
		t.Fatalf("json = %s", payload)
	}

	out, err := yaml.Marshal(inst)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	if string(out) != "zeta: 3\nalpha: 2\n" {
		t.Fatalf("yaml = %q", out)
	}
}

func TestCatalog(t *testing.T) {
	pet := schema.MustModelSchema("Pet", schema.NewField("name", schema.String()))
	catalog := schema.NewCatalog()
	if err := catalog.Add("Pet", schema.ModelOf(pet)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := catalog.Add("Tags", schema.NewRootModel("Tags", schema.ListOf(nil))); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := catalog.Add("Pet", schema.ModelOf(pet)); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if got, ok := catalog.Model("Pet"); !ok || got != pet {
		t.Fatalf("model lookup failed")
	}
	if _, ok := catalog.Model("Tags"); ok {
		t.Fatalf("root model must not be returned as a model schema")
	}
	if diff := cmp.Diff([]string{"Pet", "Tags"}, catalog.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
