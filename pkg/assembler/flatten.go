package assembler

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-fixturegen/pkg/schema"
)

// Flatten converts an instance into an ordered map, recursing into nested
// instances, lists and maps. Root instances are replaced by their value.
func Flatten(inst *schema.Instance) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	if inst == nil {
		return out
	}
	inst.Range(func(name string, value any) bool {
		out.Set(name, flattenValue(value))
		return true
	})
	return out
}

func flattenValue(value any) any {
	switch v := value.(type) {
	case *schema.Instance:
		if v == nil {
			return nil
		}
		return Flatten(v)
	case *schema.RootInstance:
		if v == nil {
			return nil
		}
		return flattenValue(v.Root)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = flattenValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = flattenValue(item)
		}
		return out
	default:
		return value
	}
}

// ToMap converts an instance into plain Go maps and slices.
func ToMap(inst *schema.Instance) map[string]any {
	out := make(map[string]any)
	if inst == nil {
		return out
	}
	inst.Range(func(name string, value any) bool {
		out[name] = plainValue(value)
		return true
	})
	return out
}

func plainValue(value any) any {
	switch v := value.(type) {
	case *schema.Instance:
		if v == nil {
			return nil
		}
		return ToMap(v)
	case *schema.RootInstance:
		if v == nil {
			return nil
		}
		return plainValue(v.Root)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plainValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = plainValue(item)
		}
		return out
	default:
		return value
	}
}

// Decode copies an instance into dst, matching fields by their json tags.
// Strings are converted to numbers and booleans where dst asks for them.
func Decode(inst *schema.Instance, dst any) error {
	if inst == nil {
		return errors.New("assembler: instance is nil")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return fmt.Errorf("assembler: decoder: %w", err)
	}
	if err := decoder.Decode(ToMap(inst)); err != nil {
		return fmt.Errorf("assembler: decode %s: %w", inst.Schema().Name(), err)
	}
	return nil
}
