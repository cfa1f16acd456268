package handlers

import "encoding/json"

// bindJSON decodes a JSON-encoded multipart form field into v.
func bindJSON(raw string, v interface{}) error {
	return json.Unmarshal([]byte(raw), v)
}
