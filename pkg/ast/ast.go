// Package ast defines the resolved, tree-shaped form of a Scratch project.
//
// Every variable, list, broadcast, asset and procedure definition is named by a
// resource.Path; block references have been replaced by the blocks themselves.
// All values are built once by the parser and never mutated afterwards.
package ast

import (
	"github.com/zurustar/ira/pkg/resource"
	"github.com/zurustar/ira/pkg/sb3"
)

// Project is the root of the tree.
type Project struct {
	// Resources owns the raw bytes of every archive entry other than project.json.
	Resources map[resource.Path][]byte

	Sprites    []Sprite
	Background Background
	Extensions []string
	Meta       sb3.Meta
}

// Variable is a declared variable with its initial value.
type Variable struct {
	Path  resource.Path
	Value sb3.Value
	Cloud bool
}

// List is a declared list with its initial contents, kept in the encoding
// they were decoded from.
type List struct {
	Path     resource.Path
	Contents sb3.ListContents
}

// Asset links a costume or sound record to the handle of its archive entry.
// Path is zero when the archive does not contain the referenced entry.
type Asset struct {
	Name string
	Path resource.Path
}

// Sprite is a non-stage target. Its tables are keyed by display name.
type Sprite struct {
	Name       string
	Variables  map[string]Variable
	Lists      map[string]List
	Broadcasts map[string]resource.Path
	Blocks     []BlockItem

	// Definitions maps procedure proccodes to handles. Bodies are not expanded.
	Definitions map[string]resource.Path

	Costumes []Asset
	Sounds   []Asset
}

// Background is the stage: the implicit global target. Its variables, lists
// and broadcasts are visible from every sprite.
type Background struct {
	Variables   map[string]Variable
	Lists       map[string]List
	Broadcasts  map[string]resource.Path
	Blocks      []BlockItem
	Definitions map[string]resource.Path
	Costumes    []Asset
	Sounds      []Asset
}

// Sprite returns the sprite with the given name.
func (p *Project) Sprite(name string) (*Sprite, bool) {
	for i := range p.Sprites {
		if p.Sprites[i].Name == name {
			return &p.Sprites[i], true
		}
	}
	return nil, false
}
