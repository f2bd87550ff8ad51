package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-fixturegen/pkg/openapi"
)

// Verifier implements pkgopenapi.Verifier with kin-openapi's JSON visitor.
type Verifier struct {
	parser *Parser
}

var _ pkgopenapi.Verifier = (*Verifier)(nil)

// NewVerifier constructs a Verifier that loads documents with options.
func NewVerifier(options pkgopenapi.ParserOptions) pkgopenapi.Verifier {
	return &Verifier{parser: &Parser{options: options}}
}

// VerifySchema validates value against the named component schema.
func (v *Verifier) VerifySchema(ctx context.Context, doc pkgopenapi.Document, name string, value any) error {
	spec, err := v.parser.load(ctx, doc)
	if err != nil {
		return err
	}
	if spec.Components == nil {
		return fmt.Errorf("%w: %q", pkgopenapi.ErrUnknownSchema, name)
	}
	ref, ok := spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("%w: %q", pkgopenapi.ErrUnknownSchema, name)
	}
	return visit(ref.Value, name, value)
}

// VerifyOperation validates value against the request body of an operation.
func (v *Verifier) VerifyOperation(ctx context.Context, doc pkgopenapi.Document, operationID string, value any) error {
	spec, err := v.parser.load(ctx, doc)
	if err != nil {
		return err
	}
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, method := range operationMethods {
				op := item.GetOperation(method)
				if op == nil || !matchesOperation(op, method, path, operationID) {
					continue
				}
				body := requestSchema(op.RequestBody)
				if body == nil || body.Value == nil {
					return fmt.Errorf("openapi verifier: operation %q has no request body", operationID)
				}
				return visit(body.Value, operationID, value)
			}
		}
	}
	return fmt.Errorf("%w: operation %q", pkgopenapi.ErrUnknownSchema, operationID)
}

func matchesOperation(op *openapi3.Operation, method, path, id string) bool {
	if op.OperationID != "" {
		return op.OperationID == id
	}
	return strings.ToLower(method)+":"+path == id
}

// visit normalises value through JSON so numbers and nested instances match
// what a client would send, then validates it.
func visit(s *openapi3.Schema, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("openapi verifier: encode %s: %w", name, err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("openapi verifier: decode %s: %w", name, err)
	}
	if err := s.VisitJSON(decoded, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("openapi verifier: %s: %w", name, err)
	}
	return nil
}
