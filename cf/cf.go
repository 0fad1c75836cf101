package cf

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Load populates the exported fields of a struct from a flat map, keyed by the
// `cf` tag (or the field name). Unknown map keys are ignored so callers can
// mix structural keys (versions, instrument sub-maps) into the same document.
func Load(data map[string]interface{}, cf interface{}) error {
	cfV := reflect.ValueOf(cf)
	if cfV.Kind() == reflect.Ptr {
		cfV = cfV.Elem()
	}
	if cfV.Kind() != reflect.Struct {
		return errors.Errorf("cf type [%s] not struct", cfV.Type())
	}
	for i := 0; i < cfV.NumField(); i++ {
		field := cfV.Field(i)
		if !field.CanInterface() || !field.CanSet() {
			continue
		}
		key := keyName(cfV.Type().Field(i))
		v, found := data[key]
		if !found {
			continue
		}
		if err := setField(field, key, v); err != nil {
			return err
		}
	}
	return nil
}

func setField(field reflect.Value, key string, v interface{}) error {
	switch field.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		i, ok := asInt64(v)
		if !ok {
			return typeMismatch(key, v, field)
		}
		if field.OverflowInt(i) {
			return errors.Errorf("field '%s' value [%d] overflows [%s]", key, i, field.Type())
		}
		field.SetInt(i)

	case reflect.Uint32, reflect.Uint64:
		i, ok := asInt64(v)
		if !ok || i < 0 {
			return typeMismatch(key, v, field)
		}
		if field.OverflowUint(uint64(i)) {
			return errors.Errorf("field '%s' value [%d] overflows [%s]", key, i, field.Type())
		}
		field.SetUint(uint64(i))

	case reflect.Float64:
		f, ok := v.(float64)
		if !ok {
			return typeMismatch(key, v, field)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, ok := v.(bool)
		if !ok {
			return typeMismatch(key, v, field)
		}
		field.SetBool(b)

	case reflect.String:
		s, ok := v.(string)
		if !ok {
			return typeMismatch(key, v, field)
		}
		field.SetString(s)

	default:
		return errors.Errorf("unsupported field type [%s]", field.Type())
	}
	return nil
}

func asInt64(v interface{}) (int64, bool) {
	switch i := v.(type) {
	case int:
		return int64(i), true
	case int32:
		return int64(i), true
	case int64:
		return i, true
	default:
		return 0, false
	}
}

func typeMismatch(key string, v interface{}, field reflect.Value) error {
	return errors.Errorf("field '%s' type mismatch, got [%s], expected [%s]", key, reflect.TypeOf(v), field.Type())
}

func Dump(label string, cf interface{}) string {
	cfV := reflect.ValueOf(cf)
	if cfV.Kind() == reflect.Ptr {
		cfV = cfV.Elem()
	}
	if cfV.Kind() != reflect.Struct {
		return ""
	}
	out := label + " {\n"
	format := fmt.Sprintf("\t%%-%ds %%v\n", maxKeyLength(cfV))
	for i := 0; i < cfV.NumField(); i++ {
		if cfV.Field(i).CanInterface() {
			key := keyName(cfV.Type().Field(i))
			out += fmt.Sprintf(format, key, cfV.Field(i).Interface())
		}
	}
	out += "}\n"
	return out
}

func keyName(v reflect.StructField) string {
	key := v.Name
	tag := v.Tag.Get("cf")
	if tag != "" {
		key = tag
	}
	return key
}

func maxKeyLength(cfV reflect.Value) int {
	maxKeyLength := 0
	for i := 0; i < cfV.NumField(); i++ {
		if !cfV.Field(i).CanInterface() {
			continue
		}
		key := keyName(cfV.Type().Field(i))
		if len(key) > maxKeyLength {
			maxKeyLength = len(key)
		}
	}
	return maxKeyLength
}
