package json

import (
	"bytes"
	"encoding/json"
)

// Merge overlays the object in b onto the object in a and returns the merged
// document. Top-level keys from b win on collision; nested objects are
// replaced, not merged. The manifest marshalling uses this to lay modeled
// contract fields over preserved unknown ones.
func Merge(a, b []byte) ([]byte, error) {
	base, err := decodeObject(a)
	if err != nil {
		return nil, err
	}
	overlay, err := decodeObject(b)
	if err != nil {
		return nil, err
	}

	for key, value := range overlay {
		base[key] = value
	}

	return json.Marshal(base)
}

// decodeObject keeps numbers as json.Number so 64-bit manifest values survive
// the trip through map[string]any.
func decodeObject(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var out map[string]any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}

	return out, nil
}
