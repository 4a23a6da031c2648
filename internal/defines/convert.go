package defines

import (
	"fmt"
	"strconv"
	"strings"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// AsString renders a decoded configuration value as a string.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, " ")
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = AsString(item)
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(t)
	}
}

// AsStringList converts a decoded value into a list of strings.
// Scalars become one-element lists; maps are rejected.
func AsStringList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if _, isMap := item.(map[string]any); isMap {
				return nil, gerrors.NewValidationError("list element is a mapping", "", "", "use scalar list elements")
			}
			out = append(out, AsString(item))
		}
		return out, nil
	case map[string]any:
		return nil, gerrors.NewValidationError("expected a list, found a mapping", "", "", "")
	default:
		return []string{AsString(t)}, nil
	}
}

// AsBool interprets a decoded value as a boolean.
func AsBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1", "on":
			return true, true
		case "false", "no", "0", "off", "":
			return false, true
		}
	case int:
		return t != 0, true
	case int64:
		return t != 0, true
	}
	return false, false
}
