package sb3

import (
	"encoding/json"
	"fmt"

	"github.com/zurustar/ira/pkg/diag"
)

// ShadowTag is the first element of every input tuple.
type ShadowTag int

const (
	// ShadowOnly: the slot holds its shadow value and nothing covers it.
	ShadowOnly ShadowTag = 1
	// NoShadow: the slot holds a real block and has no shadow.
	NoShadow ShadowTag = 2
	// ShadowObscured: a real value covers a shadow; the real value wins.
	ShadowObscured ShadowTag = 3
)

func (t ShadowTag) String() string {
	switch t {
	case ShadowOnly:
		return "shadow"
	case NoShadow:
		return "no-shadow"
	case ShadowObscured:
		return "obscured"
	default:
		return fmt.Sprintf("shadow(%d)", int(t))
	}
}

// PayloadKind discriminates the decoded shape of an input payload.
type PayloadKind int

const (
	PayloadEmpty PayloadKind = iota
	PayloadBlock
	PayloadLiteral
	PayloadBroadcast
	PayloadVariable
	PayloadList
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadBlock:
		return "block"
	case PayloadLiteral:
		return "literal"
	case PayloadBroadcast:
		return "broadcast"
	case PayloadVariable:
		return "variable"
	case PayloadList:
		return "list"
	default:
		return "empty"
	}
}

// Wire tags of the tagged payload tuples.
const (
	TagMathNumber         = 4
	TagPositiveNumber     = 5
	TagWholeNumber        = 6
	TagInteger            = 7
	TagAngle              = 8
	TagColor              = 9
	TagText               = 10
	TagBroadcast          = 11
	TagVariable           = 12
	TagList               = 13
	firstLiteralTag       = TagMathNumber
	lastLiteralTag        = TagText
	referenceTupleLen     = 3
	referenceWithPointLen = 5
)

// InputPayload is one element of an input tuple after shape matching.
// Trailing canvas coordinates of variable and list payloads are discarded.
type InputPayload struct {
	Kind PayloadKind

	// Tag is the wire tag of literal and reference forms, 0 otherwise.
	Tag int

	// BlockID is set for PayloadBlock.
	BlockID string

	// Value is set for PayloadLiteral.
	Value Value

	// Name and ID are set for broadcast, variable and list references.
	Name string
	ID   string
}

type payloadShape struct {
	name  string
	match func(raw json.RawMessage) (InputPayload, bool)
}

// payloadShapes is tried in order; the first structural match wins.
var payloadShapes = []payloadShape{
	{"block reference", matchBlockRef},
	{"literal", matchLiteral},
	{"reference", matchReference},
	{"empty", matchEmpty},
}

// DecodePayload matches raw against the payload shapes in priority order.
func DecodePayload(raw json.RawMessage) (InputPayload, error) {
	for _, shape := range payloadShapes {
		if p, ok := shape.match(raw); ok {
			return p, nil
		}
	}
	return InputPayload{}, diag.Errorf(diag.InvalidInputFormat,
		"payload %s matches no known shape", truncate(raw))
}

func matchBlockRef(raw json.RawMessage) (InputPayload, bool) {
	id, ok := decodeString(raw)
	if !ok {
		return InputPayload{}, false
	}
	return InputPayload{Kind: PayloadBlock, BlockID: id}, true
}

func matchLiteral(raw json.RawMessage) (InputPayload, bool) {
	elems, ok := decodeTuple(raw, 2)
	if !ok {
		return InputPayload{}, false
	}
	tag, ok := decodeTag(elems[0])
	if !ok || tag < firstLiteralTag || tag > lastLiteralTag {
		return InputPayload{}, false
	}
	var v Value
	if err := json.Unmarshal(elems[1], &v); err != nil {
		return InputPayload{}, false
	}
	return InputPayload{Kind: PayloadLiteral, Tag: tag, Value: v}, true
}

func matchReference(raw json.RawMessage) (InputPayload, bool) {
	elems, ok := decodeTuple(raw, referenceTupleLen, referenceWithPointLen)
	if !ok {
		return InputPayload{}, false
	}
	tag, ok := decodeTag(elems[0])
	if !ok {
		return InputPayload{}, false
	}
	var kind PayloadKind
	switch tag {
	case TagBroadcast:
		if len(elems) != referenceTupleLen {
			return InputPayload{}, false
		}
		kind = PayloadBroadcast
	case TagVariable:
		kind = PayloadVariable
	case TagList:
		kind = PayloadList
	default:
		return InputPayload{}, false
	}
	name, ok := decodeString(elems[1])
	if !ok {
		return InputPayload{}, false
	}
	id, ok := decodeString(elems[2])
	if !ok {
		return InputPayload{}, false
	}
	if len(elems) == referenceWithPointLen {
		if _, ok := decodeNumber(elems[3]); !ok {
			return InputPayload{}, false
		}
		if _, ok := decodeNumber(elems[4]); !ok {
			return InputPayload{}, false
		}
	}
	return InputPayload{Kind: kind, Tag: tag, Name: name, ID: id}, true
}

func matchEmpty(raw json.RawMessage) (InputPayload, bool) {
	if !isJSONNull(trimmed(raw)) {
		return InputPayload{}, false
	}
	return InputPayload{Kind: PayloadEmpty}, true
}

// Input is an input slot tuple: [shadowTag, payload] or
// [shadowTag, payload, shadowPayload].
type Input struct {
	Shadow ShadowTag

	// Value is element 1 of the tuple. For ShadowObscured it is the real
	// value covering the shadow.
	Value InputPayload

	// ShadowValue is element 2 when present.
	ShadowValue *InputPayload
}

// Effective returns the payload that determines the slot's value:
// the real value when there is one, otherwise the shadow.
func (in Input) Effective() InputPayload {
	if in.Value.Kind == PayloadEmpty && in.ShadowValue != nil {
		return *in.ShadowValue
	}
	return in.Value
}

// UnmarshalJSON decodes the input tuple.
func (in *Input) UnmarshalJSON(data []byte) error {
	elems, ok := decodeTuple(data, 2, 3)
	if !ok {
		return diag.Errorf(diag.InvalidInputFormat, "input %s is not a 2- or 3-element tuple", truncate(data))
	}
	tag, ok := decodeTag(elems[0])
	if !ok || ShadowTag(tag) < ShadowOnly || ShadowTag(tag) > ShadowObscured {
		return diag.Errorf(diag.InvalidInputFormat, "input %s has an unknown shadow tag", truncate(data))
	}

	value, err := DecodePayload(elems[1])
	if err != nil {
		return err
	}
	decoded := Input{Shadow: ShadowTag(tag), Value: value}

	if len(elems) == 3 {
		shadow, err := DecodePayload(elems[2])
		if err != nil {
			return err
		}
		decoded.ShadowValue = &shadow
	}

	*in = decoded
	return nil
}
