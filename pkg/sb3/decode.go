package sb3

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/zurustar/ira/pkg/diag"
)

// Decode parses project.json text.
// Shape mismatches are reported as diag.InvalidProjectFormat, malformed input
// tuples as diag.InvalidInputFormat.
func Decode(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, decodeError(data, err)
	}
	if p.Targets == nil {
		return nil, diag.Errorf(diag.InvalidProjectFormat, "project has no targets")
	}
	return &p, nil
}

func decodeError(data []byte, err error) error {
	var de *diag.Error
	if errors.As(err, &de) {
		return de
	}
	wrapped := diag.Wrap(diag.InvalidProjectFormat, err, "decode project.json")

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		wrapped.Context = diag.ErrorContext(data, syntaxErr.Offset)
	case errors.As(err, &typeErr):
		wrapped.Context = diag.ErrorContext(data, typeErr.Offset)
	}
	return wrapped
}

// Stage returns the single stage target.
func (p *Project) Stage() (*Target, error) {
	var stage *Target
	for i := range p.Targets {
		if !p.Targets[i].IsStage {
			continue
		}
		if stage != nil {
			return nil, diag.Errorf(diag.InvalidProjectFormat,
				"project has more than one stage (%q and %q)", stage.Name, p.Targets[i].Name)
		}
		stage = &p.Targets[i]
	}
	if stage == nil {
		return nil, diag.Errorf(diag.InvalidProjectFormat, "project has no stage target")
	}
	return stage, nil
}

// Sprites returns every non-stage target in file order.
func (p *Project) Sprites() []*Target {
	var sprites []*Target
	for i := range p.Targets {
		if !p.Targets[i].IsStage {
			sprites = append(sprites, &p.Targets[i])
		}
	}
	return sprites
}

// Variable is a declared variable: [name, value] or [name, value, true] for
// cloud variables.
type Variable struct {
	Name  string
	Value Value
	Cloud bool
}

// UnmarshalJSON tries the cloud form first, then the plain pair.
func (v *Variable) UnmarshalJSON(data []byte) error {
	if elems, ok := decodeTuple(data, 3); ok {
		name, okName := decodeString(elems[0])
		var value Value
		errValue := json.Unmarshal(elems[1], &value)
		cloud, okCloud := decodeBool(elems[2])
		if okName && errValue == nil && okCloud {
			*v = Variable{Name: name, Value: value, Cloud: cloud}
			return nil
		}
	}
	if elems, ok := decodeTuple(data, 2); ok {
		name, okName := decodeString(elems[0])
		var value Value
		if okName && json.Unmarshal(elems[1], &value) == nil {
			*v = Variable{Name: name, Value: value}
			return nil
		}
	}
	return diag.Errorf(diag.InvalidProjectFormat, "variable %s is not a [name, value] tuple", truncate(data))
}

// List is a declared list: [name, contents].
type List struct {
	Name     string
	Contents ListContents
}

// UnmarshalJSON decodes the [name, contents] pair.
func (l *List) UnmarshalJSON(data []byte) error {
	elems, ok := decodeTuple(data, 2)
	if !ok {
		return diag.Errorf(diag.InvalidProjectFormat, "list %s is not a [name, contents] tuple", truncate(data))
	}
	name, ok := decodeString(elems[0])
	if !ok {
		return diag.Errorf(diag.InvalidProjectFormat, "list name %s is not a string", truncate(elems[0]))
	}
	var contents ListContents
	if err := json.Unmarshal(elems[1], &contents); err != nil {
		return err
	}
	*l = List{Name: name, Contents: contents}
	return nil
}

// ListEncoding records which shape a list's contents matched.
type ListEncoding int

const (
	// PairEncoded contents are a sequence of (key, value) tuples.
	PairEncoded ListEncoding = iota
	// Plain contents are a flat sequence of values.
	Plain
)

func (e ListEncoding) String() string {
	if e == Plain {
		return "plain"
	}
	return "pairs"
}

// ValuePair is one entry of pair-encoded list contents.
type ValuePair struct {
	Key   Value
	Value Value
}

// ListContents holds a list's initial contents exactly as decoded.
// The two encodings are kept apart; neither is converted into the other.
type ListContents struct {
	Encoding ListEncoding
	Pairs    []ValuePair
	Items    []Value
}

// Len returns the number of entries regardless of encoding.
func (c ListContents) Len() int {
	if c.Encoding == Plain {
		return len(c.Items)
	}
	return len(c.Pairs)
}

// UnmarshalJSON tries the pair encoding first, then the plain encoding.
// An empty array is pair encoded with no entries.
func (c *ListContents) UnmarshalJSON(data []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil || isJSONNull(trimmed(data)) {
		return diag.Errorf(diag.InvalidProjectFormat, "list contents %s is not an array", truncate(data))
	}

	if pairs, ok := matchPairs(elems); ok {
		*c = ListContents{Encoding: PairEncoded, Pairs: pairs}
		return nil
	}

	items := make([]Value, 0, len(elems))
	for _, e := range elems {
		var v Value
		if err := json.Unmarshal(e, &v); err != nil {
			return diag.Errorf(diag.InvalidProjectFormat, "list item %s: %v", truncate(e), err)
		}
		items = append(items, v)
	}
	*c = ListContents{Encoding: Plain, Items: items}
	return nil
}

func matchPairs(elems []json.RawMessage) ([]ValuePair, bool) {
	pairs := make([]ValuePair, 0, len(elems))
	for _, e := range elems {
		kv, ok := decodeTuple(e, 2)
		if !ok {
			return nil, false
		}
		var p ValuePair
		if json.Unmarshal(kv[0], &p.Key) != nil || json.Unmarshal(kv[1], &p.Value) != nil {
			return nil, false
		}
		pairs = append(pairs, p)
	}
	return pairs, true
}

// Field is a field slot: [value, id] or [value]. ID is empty when the field
// does not name a variable, list or broadcast.
type Field struct {
	Value string
	ID    string
}

// UnmarshalJSON tries [value, id] first, then [value].
func (f *Field) UnmarshalJSON(data []byte) error {
	if elems, ok := decodeTuple(data, 2); ok {
		value, okValue := fieldText(elems[0])
		id, okID := decodeString(elems[1])
		if !okID && isJSONNull(trimmed(elems[1])) {
			okID = true
		}
		if okValue && okID {
			*f = Field{Value: value, ID: id}
			return nil
		}
	}
	if elems, ok := decodeTuple(data, 1); ok {
		if value, ok := fieldText(elems[0]); ok {
			*f = Field{Value: value}
			return nil
		}
	}
	return diag.Errorf(diag.InvalidProjectFormat, "field %s is not a [value, id] tuple", truncate(data))
}

func fieldText(raw json.RawMessage) (string, bool) {
	var v Value
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v.String(), true
}

// Block is one entry of a target's flat block map.
type Block struct {
	Opcode   string
	Next     *string
	Parent   *string
	Inputs   map[string]Input
	Fields   map[string]Field
	Shadow   bool
	TopLevel bool
	X, Y     float64
	Mutation *Mutation

	// Loose is set when the entry is a bare variable or list reporter lying on
	// the canvas rather than a block object.
	Loose *InputPayload
}

type blockObject struct {
	Opcode   string           `json:"opcode"`
	Next     *string          `json:"next"`
	Parent   *string          `json:"parent"`
	Inputs   map[string]Input `json:"inputs"`
	Fields   map[string]Field `json:"fields"`
	Shadow   bool             `json:"shadow"`
	TopLevel bool             `json:"topLevel"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Mutation *Mutation        `json:"mutation"`
}

// Opcodes given to loose reporters.
const (
	OpcodeVariable     = "data_variable"
	OpcodeListContents = "data_listcontents"
)

// UnmarshalJSON tries the block object first, then the loose reporter tuple.
func (b *Block) UnmarshalJSON(data []byte) error {
	raw := trimmed(data)
	if len(raw) > 0 && raw[0] == '{' {
		var obj blockObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return err
		}
		if obj.Opcode == "" {
			return diag.Errorf(diag.InvalidProjectFormat, "block has no opcode")
		}
		*b = Block{
			Opcode:   obj.Opcode,
			Next:     obj.Next,
			Parent:   obj.Parent,
			Inputs:   obj.Inputs,
			Fields:   obj.Fields,
			Shadow:   obj.Shadow,
			TopLevel: obj.TopLevel,
			X:        obj.X,
			Y:        obj.Y,
			Mutation: obj.Mutation,
		}
		return nil
	}

	if p, ok := matchReference(raw); ok && (p.Kind == PayloadVariable || p.Kind == PayloadList) {
		loose := p
		field := "VARIABLE"
		opcode := OpcodeVariable
		if p.Kind == PayloadList {
			field, opcode = "LIST", OpcodeListContents
		}
		*b = Block{
			Opcode:   opcode,
			Fields:   map[string]Field{field: {Value: p.Name, ID: p.ID}},
			TopLevel: true,
			Loose:    &loose,
		}
		return nil
	}

	return diag.Errorf(diag.InvalidProjectFormat, "block %s is neither an object nor a loose reporter", truncate(data))
}

// RotationStyle is a closed enumeration with an all-around fallback.
type RotationStyle int

const (
	AllAround RotationStyle = iota
	LeftRight
	DontRotate
)

func (r RotationStyle) String() string {
	switch r {
	case LeftRight:
		return "left-right"
	case DontRotate:
		return "don't rotate"
	default:
		return "all around"
	}
}

// UnmarshalJSON never fails: unknown tags fall back to AllAround.
func (r *RotationStyle) UnmarshalJSON(data []byte) error {
	s, _ := decodeString(data)
	switch s {
	case "left-right":
		*r = LeftRight
	case "don't rotate":
		*r = DontRotate
	default:
		*r = AllAround
	}
	return nil
}

// ImageFormat is the closed dataFormat tag of costumes.
type ImageFormat int

const (
	ImagePNG ImageFormat = iota + 1
	ImageSVG
)

func (f ImageFormat) String() string {
	switch f {
	case ImagePNG:
		return "png"
	case ImageSVG:
		return "svg"
	default:
		return "format(" + strconv.Itoa(int(f)) + ")"
	}
}

// UnmarshalJSON accepts only "png" and "svg".
func (f *ImageFormat) UnmarshalJSON(data []byte) error {
	s, ok := decodeString(data)
	switch {
	case ok && s == "png":
		*f = ImagePNG
	case ok && s == "svg":
		*f = ImageSVG
	default:
		return diag.Errorf(diag.InvalidProjectFormat, "unsupported costume dataFormat %s", truncate(data))
	}
	return nil
}

// String renders a payload for diagnostics.
func (p InputPayload) String() string {
	switch p.Kind {
	case PayloadBlock:
		return "block " + strconv.Quote(p.BlockID)
	case PayloadLiteral:
		return fmt.Sprintf("literal(%d) %q", p.Tag, p.Value.String())
	case PayloadEmpty:
		return "empty"
	default:
		return fmt.Sprintf("%s %q (%s)", p.Kind, p.Name, p.ID)
	}
}
