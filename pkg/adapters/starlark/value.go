package starlark

import (
	"fmt"
	"reflect"

	"github.com/reusee/starlarkutil"
	backend "go.starlark.net/starlark"
)

// ToValue converts a Go value (typically decoded from deck configuration)
// into its Starlark representation. Values that already are Starlark values
// are returned unchanged.
func ToValue(v any) (backend.Value, error) {
	switch v := v.(type) {

	case nil:
		return backend.None, nil

	case backend.Value:
		return v, nil

	case bool:
		return backend.Bool(v), nil

	case []byte:
		return backend.Bytes(v), nil
	case string:
		return backend.String(v), nil

	case int:
		return backend.MakeInt(v), nil
	case int64:
		return backend.MakeInt64(v), nil
	case uint64:
		return backend.MakeUint64(v), nil

	case float64:
		return backend.Float(v), nil

	case []any:
		elems := make([]backend.Value, len(v))
		for i, e := range v {
			ev, err := ToValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return backend.NewList(elems), nil

	case map[string]any:
		d := backend.NewDict(len(v))
		for k, val := range v {
			ev, err := ToValue(val)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(backend.String(k), ev); err != nil {
				return nil, err
			}
		}
		return d, nil

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return backend.Bool(value.Bool()), nil

	case reflect.String:
		return backend.String(value.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return backend.MakeInt64(value.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return backend.MakeUint64(value.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return backend.Float(value.Float()), nil

	case reflect.Slice, reflect.Array:
		elems := make([]backend.Value, value.Len())
		for i := range value.Len() {
			ev, err := ToValue(value.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return backend.NewList(elems), nil

	case reflect.Map:
		d := backend.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			k, err := ToValue(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			ev, err := ToValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(k, ev); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Struct:
		typ := value.Type()
		d := backend.NewDict(value.NumField())
		for i := range value.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			ev, err := ToValue(value.Field(i).Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(backend.String(field.Name), ev); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return backend.None, nil
		}
		return ToValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface()), nil

	}

	return nil, fmt.Errorf("unsupported type for starlark: %T", v)
}
