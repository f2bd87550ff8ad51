package fixturegen_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fixturegen"
	"github.com/goliatone/go-fixturegen/pkg/assembler"
	"github.com/goliatone/go-fixturegen/pkg/generator"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

func pet() *schema.ModelSchema {
	return schema.MustModelSchema("Pet",
		schema.NewField("id", schema.Integer()),
		schema.NewField("name", schema.String()),
		schema.NewField("tags", schema.NewOptional(schema.ListOf(schema.String()))),
	)
}

func seed(n uint64) *uint64 { return &n }

func TestSynthesizeRequiredWithPin(t *testing.T) {
	inst, err := fixturegen.Synthesize(fixturegen.Request{
		Schema: pet(),
		Mode:   assembler.FillRequired,
		Pinned: map[string]any{"name": "x"},
		Seed:   seed(5),
	})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}

	flat := fixturegen.Flatten(inst)
	if flat.Len() != 2 {
		t.Fatalf("expected id and name only, got %d fields", flat.Len())
	}
	if name, _ := flat.Get("name"); name != "x" {
		t.Fatalf("name = %v", name)
	}
	if _, ok := flat.Get("tags"); ok {
		t.Fatalf("tags should be absent in required mode")
	}
}

func TestSynthesizeIsReproducible(t *testing.T) {
	run := func() string {
		inst, err := fixturegen.Synthesize(fixturegen.Request{Schema: pet(), Seed: seed(42)})
		if err != nil {
			t.Fatalf("synthesize: %v", err)
		}
		raw, err := json.Marshal(inst)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return string(raw)
	}
	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Fatalf("same seed diverged (-first +second):\n%s", diff)
	}
}

func TestSynthesizeAppliesOverrides(t *testing.T) {
	depth := 0
	inst, err := fixturegen.Synthesize(fixturegen.Request{
		Schema:      pet(),
		MaxDepth:    &depth,
		MinElements: 2,
		MaxElements: 2,
		Seed:        seed(1),
	})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	tags, ok := inst.Get("tags")
	if !ok {
		t.Fatalf("tags should be present")
	}
	if list := tags.([]any); len(list) != 0 {
		t.Fatalf("containers at max depth 0 should be empty, got %v", list)
	}
}

func TestSynthesizeRejectsInvalidConfig(t *testing.T) {
	_, err := fixturegen.Synthesize(fixturegen.Request{
		Schema:      pet(),
		MinElements: 3,
		MaxElements: 1,
	})
	if !errors.Is(err, generator.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSynthesizeRequiresSchema(t *testing.T) {
	if _, err := fixturegen.Synthesize(fixturegen.Request{}); err == nil {
		t.Fatalf("expected error without a schema")
	}
}
