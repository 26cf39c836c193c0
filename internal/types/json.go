package types

import "encoding/json"

func jsonUnmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// JSONStrings encodes a string slice for a datatypes.JSON column. Encoding a
// plain string slice cannot fail.
func JSONStrings(vals []string) []byte {
	if vals == nil {
		vals = []string{}
	}
	raw, _ := json.Marshal(vals)
	return raw
}
