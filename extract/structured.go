package extract

import "strconv"

// Str walks a decoded structured object along path and returns the string
// leaf, or "" when any step is missing or not a string. Intermediate array
// values are traversed through their first element, matching how JSON-LD
// publishers interchangeably emit objects and single-element arrays.
func Str(obj map[string]any, path ...string) string {
	v := walk(obj, path)
	s, _ := v.(string)
	return s
}

// Num walks a decoded structured object along path and returns the numeric
// leaf. JSON numbers decode as float64; numeric strings are parsed, since
// structured data frequently quotes prices and counts.
func Num(obj map[string]any, path ...string) (float64, bool) {
	switch v := walk(obj, path).(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// IsType reports whether the object's @type is t. Handles both the scalar
// and array forms of @type.
func IsType(obj map[string]any, t string) bool {
	switch v := obj["@type"].(type) {
	case string:
		return v == t
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && s == t {
				return true
			}
		}
	}
	return false
}

func walk(obj map[string]any, path []string) any {
	var cur any = obj
	for _, key := range path {
		if arr, ok := cur.([]any); ok {
			if len(arr) == 0 {
				return nil
			}
			cur = arr[0]
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	if arr, ok := cur.([]any); ok && len(arr) > 0 {
		cur = arr[0]
	}
	return cur
}
