package utils

// NestedString safely extracts a string from a decoded JSON map, walking the
// given path of object keys. Missing or mistyped levels yield ""
func NestedString(payload map[string]interface{}, path ...string) string {
	node := payload
	for i, key := range path {
		value, ok := node[key]
		if !ok {
			return ""
		}
		if i == len(path)-1 {
			s, _ := value.(string)
			return s
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return ""
		}
		node = next
	}
	return ""
}
