package resolver

import (
	"sort"

	"github.com/zurustar/ira/pkg/resource"
	"github.com/zurustar/ira/pkg/sb3"
)

// Scope is the lookup table of one target, keyed the way blocks refer to
// entities: variables, lists and broadcasts by id, definitions by proccode.
type Scope struct {
	Variables   map[string]resource.Path
	Lists       map[string]resource.Path
	Broadcasts  map[string]resource.Path
	Definitions map[string]resource.Path
}

// OpcodePrototype is the opcode of the block carrying a procedure's signature.
const OpcodePrototype = "procedures_prototype"

// BuildScope interns every entity the target declares. Entities are interned
// in id order so that a sequential parse allocates ids deterministically.
func BuildScope(t *sb3.Target, in *resource.Interner) *Scope {
	s := &Scope{
		Variables:   make(map[string]resource.Path, len(t.Variables)),
		Lists:       make(map[string]resource.Path, len(t.Lists)),
		Broadcasts:  make(map[string]resource.Path, len(t.Broadcasts)),
		Definitions: make(map[string]resource.Path),
	}
	for _, id := range sortedKeys(t.Variables) {
		s.Variables[id] = in.Intern(t.Variables[id].Name)
	}
	for _, id := range sortedKeys(t.Lists) {
		s.Lists[id] = in.Intern(t.Lists[id].Name)
	}
	for _, id := range sortedKeys(t.Broadcasts) {
		s.Broadcasts[id] = in.Intern(t.Broadcasts[id])
	}
	for _, id := range sortedKeys(t.Blocks) {
		b := t.Blocks[id]
		if b.Opcode != OpcodePrototype || b.Mutation == nil || b.Mutation.ProcCode == "" {
			continue
		}
		if _, dup := s.Definitions[b.Mutation.ProcCode]; dup {
			continue
		}
		s.Definitions[b.Mutation.ProcCode] = in.Intern(b.Mutation.ProcCode)
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
