package utils

// StringField walks a decoded JSON object along keys and returns the string
// leaf, or "" when any step is missing or not an object.
func StringField(doc map[string]interface{}, keys ...string) string {
	cur := doc
	for i, key := range keys {
		v, ok := cur[key]
		if !ok {
			return ""
		}
		if i == len(keys)-1 {
			s, _ := v.(string)
			return s
		}
		cur, ok = v.(map[string]interface{})
		if !ok {
			return ""
		}
	}
	return ""
}
