package generator

import "github.com/goliatone/go-fixturegen/pkg/schema"

// Normalize strips one Optional layer.
func Normalize(d schema.Descriptor) schema.Descriptor {
	if opt, ok := d.(*schema.Optional); ok {
		return opt.Inner
	}
	return d
}

func IsOptional(d schema.Descriptor) bool {
	_, ok := d.(*schema.Optional)
	return ok
}

func IsAnnotated(d schema.Descriptor) bool {
	_, ok := d.(*schema.Annotated)
	return ok
}

func IsUnion(d schema.Descriptor) bool {
	_, ok := d.(*schema.Union)
	return ok
}

func IsContainer(d schema.Descriptor) bool {
	_, ok := d.(*schema.Container)
	return ok
}

// IsBareString reports an undecorated string primitive, the only shape the
// field-name overlay applies to.
func IsBareString(d schema.Descriptor) bool {
	p, ok := d.(*schema.Primitive)
	return ok && p.Type == schema.TypeString
}
