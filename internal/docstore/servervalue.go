package docstore

const (
	serverValueKey       = ".sv"
	serverValueTimestamp = "timestamp"
)

// ServerTimestamp returns the placeholder that the server replaces with its
// own clock (epoch milliseconds) when the document is written.
func ServerTimestamp() map[string]any {
	return map[string]any{serverValueKey: serverValueTimestamp}
}

// IsServerTimestamp reports whether v is the timestamp placeholder.
func IsServerTimestamp(v any) bool {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return false
	}
	s, ok := m[serverValueKey].(string)
	return ok && s == serverValueTimestamp
}

// ResolveServerValues returns a copy of v with every timestamp placeholder
// replaced by nowMillis. Maps and slices are copied; other values are
// returned as is.
func ResolveServerValues(v any, nowMillis int64) any {
	if IsServerTimestamp(v) {
		return nowMillis
	}

	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = ResolveServerValues(child, nowMillis)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = ResolveServerValues(child, nowMillis)
		}
		return out
	default:
		return v
	}
}
