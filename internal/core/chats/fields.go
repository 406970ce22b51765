package chats

// Per-network payloads disagree on field names, so semantic fields resolve
// through ordered accessor fallbacks over the raw map instead of per-network
// types: the variant surface is shallow and the shared logic dominates.

// stringField returns the first key holding a non-empty string.
func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// boolField returns the first key holding true.
func boolField(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if b, ok := m[k].(bool); ok && b {
			return true
		}
	}
	return false
}

// mapField returns the first key holding a non-nil map.
func mapField(m map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		if mm, ok := m[k].(map[string]any); ok {
			return mm
		}
	}
	return nil
}

// sliceField returns the first key holding a slice.
func sliceField(m map[string]any, keys ...string) []any {
	for _, k := range keys {
		if s, ok := m[k].([]any); ok {
			return s
		}
	}
	return nil
}
