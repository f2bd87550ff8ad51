package openapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fixturegen"
	"github.com/goliatone/go-fixturegen/pkg/generator"
	pkgopenapi "github.com/goliatone/go-fixturegen/pkg/openapi"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

func TestLoaderParserIntegration(t *testing.T) {
	ctx := context.Background()

	data, err := os.ReadFile(filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "petstore.yaml")
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		t.Fatalf("write temp fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)

	loader := fixturegen.NewLoader(
		pkgopenapi.WithFileSystem(fstest.MapFS{"specs/petstore.yaml": {Data: data}}),
		pkgopenapi.WithHTTPClient(server.Client()),
	)
	parser := fixturegen.NewParser()

	sources := []pkgopenapi.Source{
		pkgopenapi.SourceFromFile(filePath),
		pkgopenapi.SourceFromFS("specs/petstore.yaml"),
		pkgopenapi.SourceFromURL(server.URL + "/petstore.yaml"),
	}

	var names [][]string
	for _, src := range sources {
		doc, err := loader.Load(ctx, src)
		if err != nil {
			t.Fatalf("load %s: %v", src.Kind(), err)
		}
		catalog, err := parser.Catalog(ctx, doc)
		if err != nil {
			t.Fatalf("catalog %s: %v", src.Kind(), err)
		}
		names = append(names, catalog.Names())
	}

	for i := 1; i < len(names); i++ {
		if diff := cmp.Diff(names[0], names[i]); diff != "" {
			t.Fatalf("%s catalog differs from file catalog (-file +other):\n%s", sources[i].Kind(), diff)
		}
	}
}

func TestLoaderRejectsURLWithoutHTTP(t *testing.T) {
	loader := fixturegen.NewLoader()
	_, err := loader.Load(context.Background(), pkgopenapi.SourceFromURL("https://example.com/openapi.yaml"))
	if err == nil {
		t.Fatalf("expected error when http support is disabled")
	}
}

func TestLoaderReportsHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	loader := fixturegen.NewLoader(pkgopenapi.WithHTTPClient(server.Client()))
	_, err := loader.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestAdapterDetectsNonOpenAPIPayloads(t *testing.T) {
	files := fstest.MapFS{"notes.yaml": {Data: []byte("title: release notes\n")}}
	adapter := fixturegen.NewAdapter([]pkgopenapi.LoaderOption{pkgopenapi.WithFileSystem(files)})
	if _, _, err := adapter.Catalog(context.Background(), pkgopenapi.SourceFromFS("notes.yaml")); err == nil {
		t.Fatalf("expected detection error")
	}
}

// Every fixture synthesized from the petstore catalog must validate against the
// schema it was generated from.
func TestSynthesizedFixturesConformToDocument(t *testing.T) {
	ctx := context.Background()
	adapter := fixturegen.NewAdapter(nil)
	doc, catalog, err := adapter.Catalog(ctx, pkgopenapi.SourceFromFile(filepath.Join("testdata", "petstore.yaml")))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	verifier := fixturegen.NewVerifier()
	gen := fixturegen.NewGenerator()

	for seed := uint64(1); seed <= 25; seed++ {
		for _, name := range catalog.Names() {
			value := synthesize(t, gen, catalog, name, seed)
			if err := verifier.VerifySchema(ctx, doc, name, value); err != nil {
				t.Fatalf("seed %d: %s does not conform: %v", seed, name, err)
			}
		}

		for _, id := range catalog.Operations() {
			op, _ := catalog.Operation(id)
			value, err := gen.Generate(generator.NewSource(seed), op.Payload, "", 0)
			if err != nil {
				t.Fatalf("seed %d: generate %s: %v", seed, id, err)
			}
			if err := verifier.VerifyOperation(ctx, doc, id, value); err != nil {
				t.Fatalf("seed %d: %s payload does not conform: %v", seed, id, err)
			}
		}
	}
}

func synthesize(t *testing.T, gen generator.Generator, catalog *schema.Catalog, name string, seed uint64) any {
	t.Helper()

	if model, ok := catalog.Model(name); ok {
		inst, err := fixturegen.Synthesize(fixturegen.Request{Schema: model, Generator: gen, Seed: &seed})
		if err != nil {
			t.Fatalf("seed %d: synthesize %s: %v", seed, name, err)
		}
		return inst
	}

	d, _ := catalog.Lookup(name)
	value, err := gen.Generate(generator.NewSource(seed), d, "", 0)
	if err != nil {
		t.Fatalf("seed %d: generate %s: %v", seed, name, err)
	}
	return value
}
