// Package resource issues the handles that name every variable, list,
// broadcast, asset and procedure definition in a parsed project.
package resource

import (
	"fmt"
	"sync/atomic"
)

// Path is an opaque handle to a named entity.
//
// Identity is positional: two Paths are equal exactly when they came from the
// same Intern call. The label is fixed when the id is allocated, so comparing
// Paths with == (or using them as map keys) is the same as comparing ids.
type Path struct {
	id    uint64
	label string
}

// ID returns the numeric id.
func (p Path) ID() uint64 { return p.id }

// Label returns the display name the handle was interned with.
func (p Path) Label() string { return p.label }

// IsZero reports whether p was never interned.
func (p Path) IsZero() bool { return p.id == 0 }

// Equal compares ids only.
func (p Path) Equal(o Path) bool { return p.id == o.id }

// String renders "$<id>(<label>)" for diagnostics.
func (p Path) String() string { return fmt.Sprintf("$%d(%s)", p.id, p.label) }

// JSName renders the identifier a code generator can use for the entity.
func (p Path) JSName() string { return fmt.Sprintf("$%d", p.id) }

// Interner allocates Paths. One Interner is shared by every worker of a parse
// run; ids start at 1, increase monotonically and are never reused.
// The zero value is ready to use.
type Interner struct {
	next atomic.Uint64
}

// NewInterner returns an empty interner.
func NewInterner() *Interner { return &Interner{} }

// Intern allocates a new handle. Interning the same label twice yields two
// distinct handles; callers keep their own name-to-handle tables per scope.
func (in *Interner) Intern(label string) Path {
	return Path{id: in.next.Add(1), label: label}
}

// ID returns the numeric id of p.
func (in *Interner) ID(p Path) uint64 { return p.id }

// Label returns the label of p.
func (in *Interner) Label(p Path) string { return p.label }

// Count returns how many handles have been allocated.
func (in *Interner) Count() uint64 { return in.next.Load() }
