package sb3

import (
	"bytes"
	"encoding/json"
	"math"
)

// Helpers for positional decoding of the untagged tuples used throughout
// project.json. Each returns ok=false instead of an error so that callers can
// fall through to the next candidate shape.

func trimmed(raw []byte) []byte { return bytes.TrimSpace(raw) }

// decodeTuple decodes raw as a JSON array whose length is one of lengths.
func decodeTuple(raw []byte, lengths ...int) ([]json.RawMessage, bool) {
	raw = trimmed(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	for _, n := range lengths {
		if len(elems) == n {
			return elems, true
		}
	}
	return nil, false
}

func decodeString(raw []byte) (string, bool) {
	raw = trimmed(raw)
	if !isJSONString(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodeNumber(raw []byte) (float64, bool) {
	raw = trimmed(raw)
	if len(raw) == 0 || isJSONNull(raw) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

// decodeTag decodes a small non-negative integer discriminant.
func decodeTag(raw []byte) (int, bool) {
	n, ok := decodeNumber(raw)
	if !ok || n < 0 || n > math.MaxInt16 || n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}

func decodeBool(raw []byte) (bool, bool) {
	raw = trimmed(raw)
	var b bool
	if isJSONNull(raw) {
		return false, false
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}
