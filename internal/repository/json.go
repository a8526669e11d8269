package repository

import "encoding/json"

// marshalJSON encodes a value for storage in a MySQL JSON column. A nil
// string slice is stored as an empty array so reads never return null tags.
func marshalJSON(v any) ([]byte, error) {
	if s, ok := v.([]string); ok && s == nil {
		v = []string{}
	}
	return json.Marshal(v)
}

// unmarshalJSON decodes a JSON column into dst, treating empty bytes as a
// no-op so legacy NULL columns scan cleanly.
func unmarshalJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
