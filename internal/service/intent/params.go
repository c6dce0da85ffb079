package intent

import (
	"strconv"
	"strings"
)

// Parameter extraction tolerates the loose key names the conversational
// platform emits. Each helper walks its alias list in priority order and
// returns the first usable value.

func stringParam(params map[string]any, aliases ...string) string {
	for _, k := range aliases {
		v, ok := params[k]
		if !ok {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		case float64:
			// phone numbers sometimes arrive numeric
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}

// intParam coerces floats and digit strings; def is returned when no alias
// yields a number.
func intParam(params map[string]any, def int, aliases ...string) int {
	for _, k := range aliases {
		v, ok := params[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return i
			}
		}
	}
	return def
}

func listParam(params map[string]any, aliases ...string) []map[string]any {
	for _, k := range aliases {
		v, ok := params[k]
		if !ok {
			continue
		}
		raw, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(raw))
		for _, e := range raw {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
