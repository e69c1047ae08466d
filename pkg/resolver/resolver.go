// Package resolver turns one target's flat, id-indexed block map into the
// trigger scripts of the AST.
//
// Resolution is a depth-first walk from every trigger block. Names are looked
// up in the target's own scope first and in the stage's scope second.
package resolver

import (
	"encoding/json"
	"log/slog"

	"github.com/zurustar/ira/pkg/ast"
	"github.com/zurustar/ira/pkg/diag"
	"github.com/zurustar/ira/pkg/resource"
	"github.com/zurustar/ira/pkg/sb3"
)

// Resolver resolves the scripts of a single target. It is not safe for
// concurrent use; the parser creates one per target.
type Resolver struct {
	target *sb3.Target
	local  *Scope
	global *Scope
	log    *slog.Logger

	notices []diag.Notice
	onPath  map[string]bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for skipped triggers and fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a resolver for target. global may be nil when target is the
// stage itself.
func New(target *sb3.Target, local, global *Scope, opts ...Option) *Resolver {
	r := &Resolver{
		target: target,
		local:  local,
		global: global,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Notices returns the fallbacks taken by the last Resolve call.
func (r *Resolver) Notices() []diag.Notice { return r.notices }

// Resolve builds one BlockItem per trigger block, in block-id order.
// Any failure aborts the whole target.
func (r *Resolver) Resolve() ([]ast.BlockItem, error) {
	r.notices = nil
	var items []ast.BlockItem
	for _, id := range sortedKeys(r.target.Blocks) {
		b := r.target.Blocks[id]
		if !b.TopLevel || b.Loose != nil {
			continue
		}
		build, ok := triggers[b.Opcode]
		if !ok {
			r.log.Debug("skipping top-level block", "target", r.target.Name, "block", id, "opcode", b.Opcode)
			continue
		}

		r.onPath = map[string]bool{id: true}
		body, err := r.walkChain(deref(b.Next))
		if err != nil {
			return nil, r.attribute(err)
		}
		item, err := build(r, id, &b, body)
		if err != nil {
			return nil, r.attribute(err)
		}
		items = append(items, item)
	}
	return items, nil
}

// triggerFunc builds a BlockItem from a hat block and its resolved body.
type triggerFunc func(r *Resolver, id string, b *sb3.Block, body ast.BlockStack) (ast.BlockItem, error)

var triggers = map[string]triggerFunc{
	opcodeWhenFlagClicked: func(_ *Resolver, _ string, _ *sb3.Block, body ast.BlockStack) (ast.BlockItem, error) {
		return &ast.WhenGreenFlagClicked{Stack: body}, nil
	},
	opcodeWhenKeyPressed: func(_ *Resolver, id string, b *sb3.Block, body ast.BlockStack) (ast.BlockItem, error) {
		f, ok := b.Fields[fieldKeyOption]
		if !ok {
			return nil, diag.NewMissingInput(id, b.Opcode, fieldKeyOption)
		}
		key, ok := ast.ParseKey(f.Value)
		if !ok {
			e := diag.Errorf(diag.InvalidInputFormat, "unknown key %q", f.Value)
			e.BlockID = id
			return nil, e
		}
		return &ast.WhenKeyPressed{Key: key, Stack: body}, nil
	},
	opcodeWhenBroadcast: func(r *Resolver, id string, b *sb3.Block, body ast.BlockStack) (ast.BlockItem, error) {
		f, ok := b.Fields[fieldBroadcastOption]
		if !ok {
			return nil, diag.NewMissingInput(id, b.Opcode, fieldBroadcastOption)
		}
		p, err := r.lookup(broadcastKind, f.ID, f.Value)
		if err != nil {
			return nil, err
		}
		return &ast.WhenBroadcastReceived{Broadcast: p, Stack: body}, nil
	},
	opcodeWhenSpriteClicked: func(_ *Resolver, _ string, _ *sb3.Block, body ast.BlockStack) (ast.BlockItem, error) {
		return &ast.WhenThisSpriteClicked{Stack: body}, nil
	},
	opcodeWhenStageClicked: func(_ *Resolver, _ string, _ *sb3.Block, body ast.BlockStack) (ast.BlockItem, error) {
		return &ast.WhenStageClicked{Stack: body}, nil
	},
	opcodeWhenCloneStarts: func(_ *Resolver, _ string, _ *sb3.Block, body ast.BlockStack) (ast.BlockItem, error) {
		return &ast.WhenCloneStarts{Stack: body}, nil
	},
}

// walkChain follows next links from start. Every visited id stays on the
// path until the chain has been fully walked.
func (r *Resolver) walkChain(start string) (ast.BlockStack, error) {
	var (
		blocks  []ast.Block
		visited []string
	)
	defer func() {
		for _, id := range visited {
			delete(r.onPath, id)
		}
	}()

	for id := start; id != ""; {
		if r.onPath[id] {
			return ast.BlockStack{}, diag.NewCycle(id)
		}
		b, ok := r.target.Blocks[id]
		if !ok {
			return ast.BlockStack{}, danglingBlock(id)
		}
		r.onPath[id] = true
		visited = append(visited, id)

		blk, err := r.translate(id, &b)
		if err != nil {
			return ast.BlockStack{}, err
		}
		blocks = append(blocks, blk)
		id = deref(b.Next)
	}
	return ast.NewStack(blocks...), nil
}

// resolveBlockRef translates a reporter referenced from an input slot.
func (r *Resolver) resolveBlockRef(id string) (ast.Block, error) {
	if r.onPath[id] {
		return nil, diag.NewCycle(id)
	}
	b, ok := r.target.Blocks[id]
	if !ok {
		return nil, danglingBlock(id)
	}
	r.onPath[id] = true
	defer delete(r.onPath, id)
	return r.translate(id, &b)
}

func (r *Resolver) translate(id string, b *sb3.Block) (ast.Block, error) {
	switch b.Opcode {
	case sb3.OpcodeVariable:
		return r.refField(id, b, fieldVariable, variableKind)
	case sb3.OpcodeListContents:
		return r.refField(id, b, fieldList, listKind)
	case opcodeBroadcastMenu:
		return r.refField(id, b, fieldBroadcastOption, broadcastKind)
	case opcodeProcedureCall:
		return r.procedureCall(id, b)
	}

	if name, ok := menus[b.Opcode]; ok {
		f, ok := b.Fields[name]
		if !ok {
			return nil, diag.NewMissingInput(id, b.Opcode, name)
		}
		return &ast.Literal{Value: sb3.Str(f.Value)}, nil
	}

	spec, ok := opcodes[b.Opcode]
	if !ok {
		n := diag.Notice{
			Target:  r.target.Name,
			BlockID: id,
			Opcode:  b.Opcode,
			Message: "unsupported opcode replaced by placeholder",
		}
		r.notices = append(r.notices, n)
		r.log.Warn("unsupported opcode", "target", r.target.Name, "block", id, "opcode", b.Opcode)
		return ast.Placeholder(), nil
	}

	args := make([]ast.Block, 0, len(spec.slots))
	for _, s := range spec.slots {
		arg, err := r.resolveSlot(id, b, s)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &ast.Operation{Op: spec.op, Args: args}, nil
}

func (r *Resolver) resolveSlot(id string, b *sb3.Block, s slot) (ast.Block, error) {
	switch s.kind {
	case slotInput:
		in, ok := b.Inputs[s.name]
		if !ok {
			return nil, diag.NewMissingInput(id, b.Opcode, s.name)
		}
		p := in.Effective()
		if p.Kind == sb3.PayloadEmpty {
			return nil, diag.NewMissingInput(id, b.Opcode, s.name)
		}
		return r.resolvePayload(p)

	case slotCondition:
		in, ok := b.Inputs[s.name]
		if !ok || in.Effective().Kind == sb3.PayloadEmpty {
			return &ast.Literal{Value: sb3.Bool(false)}, nil
		}
		return r.resolvePayload(in.Effective())

	case slotSubstack:
		in, ok := b.Inputs[s.name]
		if !ok || in.Effective().Kind == sb3.PayloadEmpty {
			return &ast.Stack{}, nil
		}
		p := in.Effective()
		if p.Kind != sb3.PayloadBlock {
			e := diag.Errorf(diag.InvalidInputFormat, "substack %s holds a %s payload", s.name, p.Kind)
			e.BlockID = id
			return nil, e
		}
		body, err := r.walkChain(p.BlockID)
		if err != nil {
			return nil, err
		}
		return &ast.Stack{Stack: body}, nil

	case slotField:
		f, ok := b.Fields[s.name]
		if !ok {
			return nil, diag.NewMissingInput(id, b.Opcode, s.name)
		}
		return &ast.Literal{Value: sb3.Str(f.Value)}, nil

	case slotVariableField:
		return r.refField(id, b, s.name, variableKind)

	case slotListField:
		return r.refField(id, b, s.name, listKind)
	}
	return nil, diag.Errorf(diag.InvalidInputFormat, "slot %s has unknown kind %d", s.name, s.kind)
}

func (r *Resolver) resolvePayload(p sb3.InputPayload) (ast.Block, error) {
	switch p.Kind {
	case sb3.PayloadBlock:
		return r.resolveBlockRef(p.BlockID)
	case sb3.PayloadLiteral:
		return &ast.Literal{Value: p.Value}, nil
	case sb3.PayloadBroadcast:
		return r.ref(broadcastKind, p.ID, p.Name)
	case sb3.PayloadVariable:
		return r.ref(variableKind, p.ID, p.Name)
	case sb3.PayloadList:
		return r.ref(listKind, p.ID, p.Name)
	}
	return nil, diag.Errorf(diag.InvalidInputFormat, "payload %s cannot be resolved", p)
}

func (r *Resolver) refField(id string, b *sb3.Block, name string, kind refKind) (ast.Block, error) {
	f, ok := b.Fields[name]
	if !ok {
		return nil, diag.NewMissingInput(id, b.Opcode, name)
	}
	blk, err := r.ref(kind, f.ID, f.Value)
	if e, ok := err.(*diag.Error); ok && e.BlockID == "" {
		e.BlockID = id
	}
	return blk, err
}

func (r *Resolver) ref(kind refKind, id, name string) (ast.Block, error) {
	p, err := r.lookup(kind, id, name)
	if err != nil {
		return nil, err
	}
	switch kind {
	case variableKind:
		return &ast.VariableRef{Path: p}, nil
	case listKind:
		return &ast.ListRef{Path: p}, nil
	default:
		return &ast.BroadcastRef{Path: p}, nil
	}
}

type refKind int

const (
	variableKind refKind = iota
	listKind
	broadcastKind
	definitionKind
)

var refKindNames = [...]string{"variable", "list", "broadcast", "procedure"}

func (s *Scope) table(kind refKind) map[string]resource.Path {
	if s == nil {
		return nil
	}
	switch kind {
	case variableKind:
		return s.Variables
	case listKind:
		return s.Lists
	case broadcastKind:
		return s.Broadcasts
	default:
		return s.Definitions
	}
}

// lookup searches the local scope, then the global one.
func (r *Resolver) lookup(kind refKind, id, name string) (resource.Path, error) {
	if p, ok := r.local.table(kind)[id]; ok {
		return p, nil
	}
	if p, ok := r.global.table(kind)[id]; ok {
		return p, nil
	}
	return resource.Path{}, diag.NewUnresolved(refKindNames[kind], name, id)
}

func (r *Resolver) procedureCall(id string, b *sb3.Block) (ast.Block, error) {
	if b.Mutation == nil {
		e := diag.Errorf(diag.InvalidProjectFormat, "procedure call has no mutation")
		e.BlockID = id
		return nil, e
	}
	def, err := r.lookup(definitionKind, b.Mutation.ProcCode, b.Mutation.ProcCode)
	if err != nil {
		if e, ok := err.(*diag.Error); ok {
			e.BlockID = id
		}
		return nil, err
	}

	var argIDs []string
	if b.Mutation.ArgumentIDs != "" {
		if err := json.Unmarshal([]byte(b.Mutation.ArgumentIDs), &argIDs); err != nil {
			e := diag.Wrap(diag.InvalidProjectFormat, err, "argumentids of procedure call")
			e.BlockID = id
			return nil, e
		}
	}

	args := make([]ast.Block, 0, len(argIDs))
	for _, argID := range argIDs {
		in, ok := b.Inputs[argID]
		if !ok || in.Effective().Kind == sb3.PayloadEmpty {
			// Scratch drops empty boolean arguments from the inputs.
			args = append(args, &ast.Literal{Value: sb3.Str("")})
			continue
		}
		arg, err := r.resolvePayload(in.Effective())
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &ast.ProcedureCall{Definition: def, Args: args}, nil
}

// attribute tags err with the target name.
func (r *Resolver) attribute(err error) error {
	if e, ok := err.(*diag.Error); ok {
		return e.WithTarget(r.target.Name)
	}
	return err
}

func danglingBlock(id string) *diag.Error {
	e := diag.Errorf(diag.InvalidProjectFormat, "reference to a block that does not exist")
	e.BlockID = id
	return e
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

