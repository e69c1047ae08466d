package ast

import (
	"strings"

	"github.com/zurustar/ira/pkg/resource"
	"github.com/zurustar/ira/pkg/sb3"
)

// Block is a resolved statement or expression.
type Block interface {
	String() string
	blockNode()
}

// BlockStack is a statement chain; execution order is slice order.
type BlockStack struct {
	Blocks []Block
}

// NewStack builds a stack from blocks.
func NewStack(blocks ...Block) BlockStack { return BlockStack{Blocks: blocks} }

// Len returns the number of statements.
func (s BlockStack) Len() int { return len(s.Blocks) }

func (s BlockStack) String() string {
	parts := make([]string, len(s.Blocks))
	for i, b := range s.Blocks {
		parts[i] = b.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Literal is an inline value.
type Literal struct {
	Value sb3.Value
}

// Placeholder is what unrecognized opcodes degrade to.
func Placeholder() *Literal { return &Literal{Value: sb3.Num(0)} }

func (b *Literal) blockNode()     {}
func (b *Literal) String() string { return "Literal(" + quoteValue(b.Value) + ")" }

// BroadcastRef names a broadcast message.
type BroadcastRef struct {
	Path resource.Path
}

func (b *BroadcastRef) blockNode()     {}
func (b *BroadcastRef) String() string { return "Broadcast(" + b.Path.String() + ")" }

// VariableRef reads a variable.
type VariableRef struct {
	Path resource.Path
}

func (b *VariableRef) blockNode()     {}
func (b *VariableRef) String() string { return "Variable(" + b.Path.String() + ")" }

// ListRef names a list.
type ListRef struct {
	Path resource.Path
}

func (b *ListRef) blockNode()     {}
func (b *ListRef) String() string { return "List(" + b.Path.String() + ")" }

// Stack is a nested stack held by an input slot, such as the body of a loop.
type Stack struct {
	Stack BlockStack
}

func (b *Stack) blockNode()     {}
func (b *Stack) String() string { return b.Stack.String() }

// Operation is an opcode-specific operator.
// Args follow the operand order documented on each Op.
type Operation struct {
	Op   Op
	Args []Block
}

func (b *Operation) blockNode() {}
func (b *Operation) String() string {
	if len(b.Args) == 0 {
		return string(b.Op)
	}
	return string(b.Op) + "(" + joinBlocks(b.Args) + ")"
}

// ProcedureCall invokes a custom block. Args are in argument-id order.
type ProcedureCall struct {
	Definition resource.Path
	Args       []Block
}

func (b *ProcedureCall) blockNode() {}
func (b *ProcedureCall) String() string {
	return "Call(" + b.Definition.String() + listTail(b.Args) + ")"
}

func joinBlocks(blocks []Block) string {
	parts := make([]string, len(blocks))
	for i, a := range blocks {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

func listTail(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}
	return ", " + joinBlocks(blocks)
}

func quoteValue(v sb3.Value) string {
	if v.Kind() == sb3.KindString {
		return `"` + v.String() + `"`
	}
	return v.String()
}
