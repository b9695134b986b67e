package model

import "encoding/json"

// Encode serializes a record to its stored representation.
func Encode(record any) ([]byte, error) {
	return json.Marshal(record)
}

// Decode reconstructs a record from its stored representation.
func Decode(data []byte, record any) error {
	return json.Unmarshal(data, record)
}
