package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	internalParser "github.com/goliatone/go-fixturegen/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-fixturegen/pkg/openapi"
	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// LoadDocument reads a fixture and builds an openapi.Document using a file
// source. Testing helpers fail the test on error to keep contract tests concise.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// LoadCatalog parses the fixture at path with default parser options.
func LoadCatalog(t *testing.T, path string) (pkgopenapi.Document, *schema.Catalog) {
	t.Helper()

	doc := LoadDocument(t, path)
	parser := internalParser.New(pkgopenapi.NewParserOptions())
	catalog, err := parser.Catalog(context.Background(), doc)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return doc, catalog
}

// DescribeCatalog renders a catalog as stable text lines: one per named
// descriptor, one per model field, one per operation. Golden files store this
// form so diffs read like the document.
func DescribeCatalog(catalog *schema.Catalog) []string {
	var lines []string
	for _, name := range catalog.Names() {
		d, _ := catalog.Lookup(name)
		lines = append(lines, name+" = "+describe(d))
		if s, ok := catalog.Model(name); ok {
			lines = append(lines, describeFields(s)...)
		}
	}
	for _, id := range catalog.Operations() {
		op, _ := catalog.Operation(id)
		lines = append(lines, fmt.Sprintf("%s %s %s -> %s", op.Method, op.Path, id, describe(op.Payload)))
		if m, ok := op.Payload.(*schema.Model); ok {
			lines = append(lines, describeFields(m.Schema)...)
		}
	}
	return lines
}

func describeFields(s *schema.ModelSchema) []string {
	lines := make([]string, 0, s.Len())
	for _, field := range s.Fields() {
		marker := " "
		if field.Required {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("  %s %s: %s", marker, field.Name, describe(field.Type)))
	}
	return lines
}

func describe(d schema.Descriptor) string {
	switch v := d.(type) {
	case nil:
		return "<nil>"
	case *schema.RootModel:
		return v.String() + " of " + describe(v.Inner)
	default:
		return d.String()
	}
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenLines reads a text golden file, one entry per line.
func MustReadGoldenLines(t *testing.T, path string) []string {
	t.Helper()
	return strings.Split(strings.TrimRight(string(MustReadGolden(t, path)), "\n"), "\n")
}
