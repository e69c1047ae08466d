package sb3

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind discriminates the three scalar kinds a Scratch value can take.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// Value is an untagged Scratch scalar: a string, a number or a boolean.
// The zero value is the empty string.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// Str returns a string value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Num returns a number value.
func Num(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the decoded kind.
func (v Value) Kind() ValueKind { return v.kind }

// Num coerces v to a number.
// Booleans map to 1/0, numeric strings are parsed, everything else is 0.
func (v Value) Num() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	}
}

// Bool coerces v to a boolean.
// "", "0", "false" (any case) and the number 0 are false.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	default:
		switch strings.ToLower(v.str) {
		case "", "0", "false":
			return false
		}
		return true
	}
}

// String renders v the way Scratch displays it.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// GoString is used by %#v in diagnostics.
func (v Value) GoString() string {
	switch v.kind {
	case KindNumber:
		return fmt.Sprintf("sb3.Num(%v)", v.num)
	case KindBool:
		return fmt.Sprintf("sb3.Bool(%v)", v.b)
	default:
		return fmt.Sprintf("sb3.Str(%q)", v.str)
	}
}

// Equal reports whether v and o have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	default:
		return v.str == o.str
	}
}

// UnmarshalJSON tries string, then number, then bool.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil && isJSONString(data) {
		*v = Str(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil && !isJSONNull(data) {
		*v = Num(n)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil && !isJSONNull(data) {
		*v = Bool(b)
		return nil
	}
	return fmt.Errorf("value %s is neither a string, a number nor a boolean", truncate(data))
}

// MarshalJSON writes the value back in its decoded kind.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.str)
	}
}

func isJSONString(data []byte) bool { return len(data) > 0 && data[0] == '"' }

func isJSONNull(data []byte) bool { return bytes.Equal(data, []byte("null")) }

func truncate(data []byte) string {
	const limit = 40
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
