// Package diag defines the error vocabulary shared by every stage of the
// sb3 pipeline, together with the non-fatal notices emitted when a project
// uses constructs the resolver does not understand yet.
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a pipeline failure.
// Kind implements error so that a bare Kind can be used as an errors.Is target:
//
//	if errors.Is(err, diag.CyclicBlockChain) { ... }
type Kind int

const (
	// MissingProjectDescriptor is raised when the archive has no project.json entry.
	MissingProjectDescriptor Kind = iota + 1
	// UnreadableArchive is raised when the archive itself cannot be opened or extracted.
	UnreadableArchive
	// InvalidProjectFormat is a JSON shape mismatch anywhere in the raw model.
	InvalidProjectFormat
	// InvalidInputFormat is an input tuple matching no payload shape, or a
	// required input slot that is absent.
	InvalidInputFormat
	// UnresolvedReference is a variable, list, broadcast or procedure id found
	// in neither the local nor the global scope.
	UnresolvedReference
	// CyclicBlockChain is a next-chain or substack walk revisiting a block id.
	CyclicBlockChain
)

var kindNames = map[Kind]string{
	MissingProjectDescriptor: "missing project descriptor",
	UnreadableArchive:        "unreadable archive",
	InvalidProjectFormat:     "invalid project format",
	InvalidInputFormat:       "invalid input format",
	UnresolvedReference:      "unresolved reference",
	CyclicBlockChain:         "cyclic block chain",
}

// String returns the human readable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error implements the error interface.
func (k Kind) Error() string { return k.String() }

// Error is a structured pipeline error.
// Only Kind is mandatory; the remaining fields narrow down where the failure
// happened and are omitted from the message when empty.
type Error struct {
	Kind Kind

	// Target is the display name of the sprite or stage being parsed.
	Target string

	// BlockID is the id of the block whose translation failed.
	BlockID string

	// Name is the display name of the unresolved entity (UnresolvedReference).
	Name string

	// Message is the human-readable error description.
	Message string

	// Context holds the source lines around a JSON decode failure,
	// with a pointer (^) under the failing column.
	Context string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Name != "" {
		fmt.Fprintf(&b, " %q", e.Name)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " in target %q", e.Target)
	}
	if e.BlockID != "" {
		fmt.Fprintf(&b, " at block %q", e.BlockID)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Context != "" {
		b.WriteString("\n")
		b.WriteString(e.Context)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// WithTarget returns a copy of e attributed to the named target.
// An error that already names a target is returned unchanged.
func (e *Error) WithTarget(target string) *Error {
	if e.Target != "" {
		return e
	}
	c := *e
	c.Target = target
	return &c
}

// Errorf creates a new Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// NewUnresolved creates an UnresolvedReference error for the named entity.
func NewUnresolved(what, name, id string) *Error {
	return &Error{
		Kind:    UnresolvedReference,
		Name:    name,
		Message: fmt.Sprintf("%s id %q is declared in neither the local nor the global scope", what, id),
	}
}

// NewCycle creates a CyclicBlockChain error for a walk that came back to blockID.
func NewCycle(blockID string) *Error {
	return &Error{
		Kind:    CyclicBlockChain,
		BlockID: blockID,
		Message: "block is already on the current walk",
	}
}

// NewMissingInput creates an InvalidInputFormat error for an absent required slot.
func NewMissingInput(blockID, opcode, slot string) *Error {
	return &Error{
		Kind:    InvalidInputFormat,
		BlockID: blockID,
		Message: fmt.Sprintf("opcode %s requires input %s", opcode, slot),
	}
}
