package generation

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Skeleton renders an example JSON document for v's type, used to tell the
// model which keys to return. Strings become "string", numbers 0, slices hold
// one example element.
func Skeleton(v any) string {
	data, err := json.MarshalIndent(skeletonValue(reflect.TypeOf(v), 0), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

const maxSkeletonDepth = 6

func skeletonValue(t reflect.Type, depth int) any {
	if depth > maxSkeletonDepth {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 0
	case reflect.Float32, reflect.Float64:
		return 0.0
	case reflect.Slice, reflect.Array:
		return []any{skeletonValue(t.Elem(), depth+1)}
	case reflect.Map:
		return map[string]any{"key": skeletonValue(t.Elem(), depth+1)}
	case reflect.Struct:
		obj := orderedObject{}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			obj = append(obj, orderedField{name, skeletonValue(f.Type, depth+1)})
		}
		return obj
	default:
		return nil
	}
}

type orderedField struct {
	key   string
	value any
}

// orderedObject keeps struct field order when marshaled.
type orderedObject []orderedField

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		sb.Write(key)
		sb.WriteByte(':')
		sb.Write(val)
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}
