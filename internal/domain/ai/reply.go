package ai

import (
	"strconv"
	"strings"
)

// Reply is the parsed model output: a JSON object with string keys and
// arbitrary JSON values. Its shape is untrusted; read it through Field and
// Optional so that missing or mistyped keys fall back to defaults.
type Reply map[string]any

// ContentKey holds the raw text when a call was made without JSON mode
const ContentKey = "content"

// Field returns r[key] converted to T, or def when the key is absent, null,
// or holds a value that cannot be converted.
//
// Supported targets are string, int, float64, bool, []string, []Reply and
// Reply. Numbers arrive from JSON as float64; integral values and numeric
// strings convert to int. List targets keep only the elements of the right
// kind, so a partly malformed list degrades instead of failing.
func Field[T any](r Reply, key string, def T) T {
	raw, ok := r[key]
	if !ok || raw == nil {
		return def
	}
	v, ok := convert[T](raw)
	if !ok {
		return def
	}
	return v
}

// Optional is like Field but reports absence as nil
func Optional[T any](r Reply, key string) *T {
	raw, ok := r[key]
	if !ok || raw == nil {
		return nil
	}
	v, ok := convert[T](raw)
	if !ok {
		return nil
	}
	return &v
}

func convert[T any](raw any) (T, bool) {
	var zero T
	var out any
	var ok bool

	switch any(zero).(type) {
	case string:
		out, ok = raw.(string)
	case int:
		out, ok = toInt(raw)
	case float64:
		out, ok = toFloat(raw)
	case bool:
		out, ok = raw.(bool)
	case []string:
		out, ok = toStrings(raw)
	case []Reply:
		out, ok = toReplies(raw)
	case Reply:
		out, ok = toReply(raw)
	default:
		out, ok = raw.(T)
	}
	if !ok {
		return zero, false
	}
	v, ok := out.(T)
	return v, ok
}

func toInt(raw any) (int, bool) {
	switch n := raw.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func toStrings(raw any) ([]string, bool) {
	switch list := raw.(type) {
	case []string:
		return append(make([]string, 0, len(list)), list...), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

func toReplies(raw any) ([]Reply, bool) {
	switch list := raw.(type) {
	case []Reply:
		return append(make([]Reply, 0, len(list)), list...), true
	case []map[string]any:
		out := make([]Reply, 0, len(list))
		for _, m := range list {
			out = append(out, Reply(m))
		}
		return out, true
	case []any:
		out := make([]Reply, 0, len(list))
		for _, item := range list {
			if m, ok := toReply(item); ok {
				out = append(out, m)
			}
		}
		return out, true
	}
	return nil, false
}

func toReply(raw any) (Reply, bool) {
	switch m := raw.(type) {
	case Reply:
		return m, true
	case map[string]any:
		return Reply(m), true
	}
	return nil, false
}
