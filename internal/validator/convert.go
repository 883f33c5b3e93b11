package validator

import "reflect"

var mapType = reflect.TypeOf(map[string]any{})

// toMap accepts map[string]any and any named type built on it
func toMap(item any) (map[string]any, bool) {
	if m, ok := item.(map[string]any); ok {
		return m, true
	}
	v := reflect.ValueOf(item)
	if !v.IsValid() || !v.Type().ConvertibleTo(mapType) || v.Kind() != reflect.Map {
		return nil, false
	}
	return v.Convert(mapType).Interface().(map[string]any), true
}

// toMapSlice accepts slices whose element type is convertible to
// map[string]any, such as []Params
func toMapSlice(items any) ([]map[string]any, bool) {
	v := reflect.ValueOf(items)
	if !v.IsValid() || v.Kind() != reflect.Slice {
		return nil, false
	}
	entries := make([]map[string]any, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		entry, ok := toMap(v.Index(i).Interface())
		if !ok {
			return nil, false
		}
		entries = append(entries, entry)
	}
	return entries, true
}
