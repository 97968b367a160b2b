package localstore

import "encoding/json"

// GetJSON decodes the JSON value stored under key into v. Returns false when
// the key is absent or the stored value fails to parse; the caller keeps its
// schema defaults in either case, so a corrupt value can never crash a load.
func GetJSON(s Store, key string, v any) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false
	}
	return true
}

// SetJSON stores v under key as JSON. Marshal failures are impossible for the
// plain data structs this package persists and are ignored.
func SetJSON(s Store, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Set(key, string(raw))
}
