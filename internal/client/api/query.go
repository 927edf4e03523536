package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Params are query parameters. Values may be scalars or slices; nil and empty
// strings are dropped, slices are sent as repeated keys.
type Params map[string]any

// Encode returns the query string including the leading "?", or "" when no
// parameter survives filtering.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	values := url.Values{}
	for key, val := range p {
		rv, ok := indirect(val)
		if !ok {
			continue
		}
		if isList(rv) {
			for i := 0; i < rv.Len(); i++ {
				if s, ok := scalar(rv.Index(i).Interface()); ok {
					values.Add(key, s)
				}
			}
			continue
		}
		if s, ok := scalar(rv.Interface()); ok {
			values.Set(key, s)
		}
	}
	qs := values.Encode()
	if qs == "" {
		return ""
	}
	return "?" + qs
}

func scalar(v any) (string, bool) {
	rv, ok := indirect(v)
	if !ok {
		return "", false
	}
	var s string
	if b, isBytes := rv.Interface().([]byte); isBytes {
		s = string(b)
	} else {
		s = fmt.Sprint(rv.Interface())
	}
	if s == "" {
		return "", false
	}
	return s, true
}

func isList(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array:
		return true
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

// indirect dereferences pointers and interfaces; ok is false for nil.
func indirect(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return reflect.Value{}, false
	}
	return rv, true
}

// normalizePath returns path with exactly one leading slash.
func normalizePath(path string) string {
	return "/" + strings.TrimLeft(path, "/")
}
