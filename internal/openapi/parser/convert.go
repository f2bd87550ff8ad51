package parser

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-fixturegen/pkg/schema"
)

const (
	componentPrefix = "#/components/schemas/"
	typeNull        = "null"
)

// converter turns kin-openapi schemas into descriptors. Component schemas are
// converted once and shared, which is how cyclic references resolve: a model
// is registered before its fields are converted.
type converter struct {
	components  map[string]*openapi3.SchemaRef
	componentOf map[*openapi3.Schema]string
	built       map[string]schema.Descriptor
	taken       map[string]bool
}

func newConverter(spec *openapi3.T) *converter {
	c := &converter{
		components:  map[string]*openapi3.SchemaRef{},
		componentOf: map[*openapi3.Schema]string{},
		built:       map[string]schema.Descriptor{},
		taken:       map[string]bool{},
	}
	if spec.Components == nil {
		return c
	}
	for name, ref := range spec.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		c.components[name] = ref
		c.taken[name] = true
		if ref.Ref == "" {
			c.componentOf[ref.Value] = name
		}
	}
	return c
}

// operationMethods fixes the order operations are collected in.
var operationMethods = []string{
	http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete,
	http.MethodPatch, http.MethodHead, http.MethodOptions, http.MethodTrace,
}

func (c *converter) catalog(ctx context.Context, spec *openapi3.T) (*schema.Catalog, error) {
	catalog := schema.NewCatalog()

	for _, name := range sortedKeys(c.components) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := c.descriptor(c.components[name], name)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
		if opt, ok := d.(*schema.Optional); ok {
			d = opt.Inner
		}
		if err := catalog.Add(name, d); err != nil {
			return nil, err
		}
	}

	if spec.Paths == nil {
		return catalog, nil
	}
	paths := spec.Paths.Map()
	for _, path := range sortedKeys(paths) {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, method := range operationMethods {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			if err := c.operation(catalog, method, path, op); err != nil {
				return nil, err
			}
		}
	}
	return catalog, nil
}

func (c *converter) operation(catalog *schema.Catalog, method, path string, op *openapi3.Operation) error {
	body := requestSchema(op.RequestBody)
	if body == nil {
		return nil
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	payload, err := c.descriptor(body, pascal(id)+"Request")
	if err != nil {
		return fmt.Errorf("operation %q: %w", id, err)
	}
	return catalog.AddOperation(schema.Operation{
		ID:      id,
		Method:  method,
		Path:    path,
		Payload: payload,
	})
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	for _, key := range sortedKeys(content) {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}

// descriptor converts a schema reference. hint names inline models.
func (c *converter) descriptor(ref *openapi3.SchemaRef, hint string) (schema.Descriptor, error) {
	if ref == nil || ref.Value == nil {
		return schema.Any(), nil
	}
	s := ref.Value
	if name, ok := c.componentName(ref); ok {
		d, err := c.component(name, s)
		if err != nil {
			return nil, err
		}
		return withNullable(s, d), nil
	}
	d, err := c.shape(s, hint)
	if err != nil {
		return nil, err
	}
	return withNullable(s, d), nil
}

func (c *converter) componentName(ref *openapi3.SchemaRef) (string, bool) {
	if name, ok := c.componentOf[ref.Value]; ok {
		return name, true
	}
	if strings.HasPrefix(ref.Ref, componentPrefix) {
		name := strings.TrimPrefix(ref.Ref, componentPrefix)
		if _, ok := c.components[name]; ok {
			return name, true
		}
	}
	return "", false
}

// component converts a named schema once. Models and root models are
// registered before their contents so references back to them terminate.
func (c *converter) component(name string, s *openapi3.Schema) (schema.Descriptor, error) {
	if d, ok := c.built[name]; ok {
		return d, nil
	}

	switch {
	case isModel(s):
		model := schema.Declare(name)
		c.built[name] = schema.ModelOf(model)
		fields, err := c.fields(name, s)
		if err != nil {
			return nil, err
		}
		if err := model.Define(fields...); err != nil {
			return nil, err
		}
	case len(s.Enum) > 0:
		c.built[name] = enumOf(name, s.Enum)
	default:
		root := schema.NewRootModel(name, nil)
		c.built[name] = root
		inner, err := c.shape(s, name)
		if err != nil {
			return nil, err
		}
		root.Inner = inner
	}
	return c.built[name], nil
}

// shape converts an anonymous schema without its nullable marker.
func (c *converter) shape(s *openapi3.Schema, hint string) (schema.Descriptor, error) {
	switch {
	case len(s.Enum) > 0:
		return enumOf(hint, s.Enum), nil
	case len(s.OneOf) > 0:
		return c.union(s.OneOf, hint)
	case len(s.AnyOf) > 0:
		return c.union(s.AnyOf, hint)
	case isModel(s):
		model := schema.Declare(c.reserve(hint))
		fields, err := c.fields(model.Name(), s)
		if err != nil {
			return nil, err
		}
		if err := model.Define(fields...); err != nil {
			return nil, err
		}
		return schema.ModelOf(model), nil
	}

	types := concreteTypes(s)
	switch len(types) {
	case 0:
		switch {
		case s.Items != nil:
			return c.typed(s, "array", hint)
		case s.AdditionalProperties.Schema != nil:
			return c.typed(s, "object", hint)
		}
		return schema.Any(), nil
	case 1:
		return c.typed(s, types[0], hint)
	}

	variants := make([]schema.Descriptor, 0, len(types))
	for _, typ := range types {
		d, err := c.typed(s, typ, hint)
		if err != nil {
			return nil, err
		}
		variants = append(variants, d)
	}
	return schema.NewUnion(variants...), nil
}

func (c *converter) typed(s *openapi3.Schema, typ, hint string) (schema.Descriptor, error) {
	switch typ {
	case openapi3.TypeString:
		return stringDescriptor(s), nil
	case openapi3.TypeInteger:
		return schema.Integer(), nil
	case openapi3.TypeNumber:
		return schema.Float(), nil
	case openapi3.TypeBoolean:
		return schema.Boolean(), nil
	case openapi3.TypeArray:
		item, err := c.descriptor(s.Items, hint+"Item")
		if err != nil {
			return nil, err
		}
		if s.UniqueItems {
			return schema.SetOf(item), nil
		}
		return schema.ListOf(item), nil
	case openapi3.TypeObject:
		if s.AdditionalProperties.Schema != nil {
			value, err := c.descriptor(s.AdditionalProperties.Schema, hint+"Value")
			if err != nil {
				return nil, err
			}
			return schema.MapOf(value), nil
		}
		return schema.MapOf(schema.Any()), nil
	}
	return nil, fmt.Errorf("unsupported schema type %q", typ)
}

func (c *converter) union(refs openapi3.SchemaRefs, hint string) (schema.Descriptor, error) {
	variants := make([]schema.Descriptor, 0, len(refs))
	for i, ref := range refs {
		d, err := c.descriptor(ref, fmt.Sprintf("%sOption%d", hint, i+1))
		if err != nil {
			return nil, err
		}
		variants = append(variants, d)
	}
	return schema.NewUnion(variants...), nil
}

// fields builds the field table of an object schema, merging allOf members.
// Required properties come first in their listed order, the rest sorted by
// name, since the document does not preserve declaration order.
func (c *converter) fields(owner string, s *openapi3.Schema) ([]schema.FieldSpec, error) {
	props := map[string]*openapi3.SchemaRef{}
	var required []string
	collectProperties(s, props, &required, map[*openapi3.Schema]bool{})

	isRequired := make(map[string]bool, len(required))
	order := make([]string, 0, len(props))
	for _, name := range required {
		if _, ok := props[name]; ok && !isRequired[name] {
			isRequired[name] = true
			order = append(order, name)
		}
	}
	for _, name := range sortedKeys(props) {
		if !isRequired[name] {
			order = append(order, name)
		}
	}

	fields := make([]schema.FieldSpec, 0, len(order))
	for _, name := range order {
		d, err := c.descriptor(props[name], owner+pascal(name))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", owner, name, err)
		}
		if !isRequired[name] {
			d = schema.NewOptional(d)
		}
		fields = append(fields, schema.NewField(name, d))
	}
	return fields, nil
}

func collectProperties(s *openapi3.Schema, props map[string]*openapi3.SchemaRef, required *[]string, seen map[*openapi3.Schema]bool) {
	if s == nil || seen[s] {
		return
	}
	seen[s] = true
	for _, member := range s.AllOf {
		if member != nil {
			collectProperties(member.Value, props, required, seen)
		}
	}
	for name, ref := range s.Properties {
		props[name] = ref
	}
	*required = append(*required, s.Required...)
}

// reserve returns hint, or hint with a numeric suffix when the name is
// already used by a component or another inline model.
func (c *converter) reserve(hint string) string {
	if hint == "" {
		hint = "Inline"
	}
	name := hint
	for i := 2; c.taken[name]; i++ {
		name = fmt.Sprintf("%s%d", hint, i)
	}
	c.taken[name] = true
	return name
}

func isModel(s *openapi3.Schema) bool {
	if len(s.OneOf) > 0 || len(s.AnyOf) > 0 || len(s.Enum) > 0 {
		return false
	}
	if len(s.Properties) == 0 && len(s.AllOf) == 0 {
		return false
	}
	types := concreteTypes(s)
	return len(types) == 0 || (len(types) == 1 && types[0] == openapi3.TypeObject)
}

func stringDescriptor(s *openapi3.Schema) schema.Descriptor {
	switch strings.ToLower(s.Format) {
	case "date-time":
		return schema.DateTime()
	case "date":
		return schema.Date()
	case "uuid":
		return schema.UUID()
	case "email", "idn-email":
		return schema.NewOpaque("Email")
	case "uri", "url", "iri":
		return schema.NewOpaque("Url")
	case "ipv4":
		return schema.NewOpaque("IPv4")
	case "ipv6":
		return schema.NewOpaque("IPv6")
	case "password":
		return schema.NewOpaque("SecretStr")
	}
	if s.MinLength == 0 && s.MaxLength == nil {
		return schema.String()
	}
	annotated := &schema.Annotated{Base: schema.String()}
	if s.MinLength > 0 {
		v := int(s.MinLength)
		annotated.Constraints.MinLength = &v
	}
	if s.MaxLength != nil {
		v := int(*s.MaxLength)
		annotated.Constraints.MaxLength = &v
	}
	return annotated
}

func enumOf(name string, values []any) schema.Descriptor {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return schema.Any()
	}
	return schema.NewEnum(name, out...)
}

func withNullable(s *openapi3.Schema, d schema.Descriptor) schema.Descriptor {
	if s.Nullable || hasType(s, typeNull) {
		return schema.NewOptional(d)
	}
	return d
}

func concreteTypes(s *openapi3.Schema) []string {
	if s.Type == nil {
		return nil
	}
	out := make([]string, 0, len(*s.Type))
	for _, typ := range s.Type.Slice() {
		if typ != typeNull {
			out = append(out, typ)
		}
	}
	return out
}

func hasType(s *openapi3.Schema, want string) bool {
	if s.Type == nil {
		return false
	}
	for _, typ := range s.Type.Slice() {
		if typ == want {
			return true
		}
	}
	return false
}

// pascal turns "create_pet" or "post:/pets/{id}" into "CreatePet" or
// "PostPetsId".
func pascal(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
