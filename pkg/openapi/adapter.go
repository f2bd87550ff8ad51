package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// Adapter chains a Loader and a Parser so callers can go from a Source to a
// catalog in one call.
type Adapter struct {
	loader Loader
	parser Parser
}

// NewAdapter constructs an OpenAPI adapter with the supplied loader and parser.
func NewAdapter(loader Loader, parser Parser) *Adapter {
	return &Adapter{
		loader: loader,
		parser: parser,
	}
}

// Load fetches the raw OpenAPI document.
func (a *Adapter) Load(ctx context.Context, src Source) (Document, error) {
	if a == nil || a.loader == nil {
		return Document{}, errors.New("openapi adapter: loader is nil")
	}
	doc, err := a.loader.Load(ctx, src)
	if err != nil {
		return Document{}, err
	}
	if !Detect(doc.Raw()) {
		return Document{}, errors.New("openapi adapter: " + doc.Location() + " does not look like an OpenAPI document")
	}
	return doc, nil
}

// Catalog loads src and converts it into a descriptor catalog.
func (a *Adapter) Catalog(ctx context.Context, src Source) (Document, *schema.Catalog, error) {
	if a == nil || a.parser == nil {
		return Document{}, nil, errors.New("openapi adapter: parser is nil")
	}
	doc, err := a.Load(ctx, src)
	if err != nil {
		return Document{}, nil, err
	}
	catalog, err := a.parser.Catalog(ctx, doc)
	if err != nil {
		return Document{}, nil, err
	}
	return doc, catalog, nil
}

// Detect reports whether the raw payload appears to be OpenAPI.
func Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if _, ok := payload["openapi"]; ok {
				return true
			}
			if _, ok := payload["swagger"]; ok {
				return true
			}
		}
	}
	lower := strings.ToLower(string(trimmed))
	return strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:")
}
