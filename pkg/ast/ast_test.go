package ast

import (
	"testing"

	"github.com/zurustar/ira/pkg/resource"
	"github.com/zurustar/ira/pkg/sb3"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		ok   bool
	}{
		{"space", KeySpace, true},
		{"up arrow", KeyUpArrow, true},
		{"any", KeyAny, true},
		{"a", "a", true},
		{"Z", "z", true},
		{"7", "7", true},
		{"", "", false},
		{"ab", "", false},
		{"enter", "", false},
		{"!", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKey(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseKey(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestString(t *testing.T) {
	in := resource.NewInterner()
	score := in.Intern("score")
	msg := in.Intern("go")
	jump := in.Intern("jump %s")

	tests := []struct {
		name string
		node interface{ String() string }
		want string
	}{
		{"number literal", &Literal{Value: sb3.Num(1.5)}, "Literal(1.5)"},
		{"string literal", &Literal{Value: sb3.Str("hi")}, `Literal("hi")`},
		{"placeholder", Placeholder(), "Literal(0)"},
		{"no operands", NewOp(PenClear), "PenClear"},
		{
			"nested",
			NewOp(DataSetVariableTo, &VariableRef{Path: score}, NewOp(OperatorAdd, &VariableRef{Path: score}, &Literal{Value: sb3.Num(1)})),
			"DataSetVariableTo(Variable($1(score)), OperatorAdd(Variable($1(score)), Literal(1)))",
		},
		{"substack", NewOp(ControlForever, &Stack{Stack: NewStack(NewOp(PenStamp))}), "ControlForever([PenStamp])"},
		{"call", &ProcedureCall{Definition: jump, Args: []Block{&Literal{Value: sb3.Str("5")}}}, `Call($3(jump %s), Literal("5"))`},
		{"call without args", &ProcedureCall{Definition: jump}, "Call($3(jump %s))"},
		{"flag", &WhenGreenFlagClicked{Stack: NewStack(NewOp(PenClear))}, "EvWhenGreenFlagClicked [PenClear]"},
		{"key", &WhenKeyPressed{Key: KeySpace}, "EvWhenKeyPressed(space) []"},
		{"broadcast", &WhenBroadcastReceived{Broadcast: msg, Stack: NewStack(&BroadcastRef{Path: msg})}, "EvWhenReceiveBroadcast($2(go)) [Broadcast($2(go))]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProject_Sprite(t *testing.T) {
	p := &Project{Sprites: []Sprite{{Name: "Cat"}, {Name: "Dog"}}}
	s, ok := p.Sprite("Dog")
	if !ok || s != &p.Sprites[1] {
		t.Errorf("Sprite(Dog) = %v, %v", s, ok)
	}
	if _, ok := p.Sprite("Fish"); ok {
		t.Error("Sprite(Fish) should not be found")
	}
}
