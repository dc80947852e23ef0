package model

import (
	"encoding/json"
	"strconv"
)

// coerceString maps any decoded JSON value onto a string field.
// Numbers keep their literal text; everything non-scalar collapses to
// the empty string.
func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// coerceBool maps any decoded JSON value onto a bool field. Only an
// actual boolean true survives; every other value means false.
func coerceBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
