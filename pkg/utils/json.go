package utils

import (
	"bytes"
	"encoding/json"
)

// PrettyJson renders a value as indented JSON for debug logging. Raw byte
// slices are indented as-is; anything unmarshallable comes back unindented
// rather than failing the log call.
func PrettyJson(in any) string {
	raw, ok := in.([]byte)
	if !ok {
		marshalled, err := json.Marshal(in)
		if err != nil {
			return err.Error()
		}
		raw = marshalled
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "\t"); err != nil {
		return string(raw)
	}
	return out.String()
}
