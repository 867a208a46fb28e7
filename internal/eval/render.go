package eval

import (
	"strconv"
	"strings"
)

// Render converts an evaluated value to the textual form that is compared
// against an example's expected output. The form is stable and writable by
// hand: strings appear unquoted at the top level, floats use the shortest
// round-trip representation, lists are bracketed and comma separated.
func Render(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case []interface{}:
		parts := make([]string, len(value))
		for i, item := range value {
			parts[i] = renderElement(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Func:
		return "<function>"
	default:
		return ""
	}
}

// renderElement renders a list element. Strings are quoted inside lists so
// [a, b] and ["a, b"] stay distinguishable.
func renderElement(v interface{}) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return Render(v)
}
