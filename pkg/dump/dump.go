// Package dump renders a resolved project for people and downstream tools.
//
// Tree converts the AST into plain maps and slices, which the json and yaml
// encoders write with sorted keys. The text format prints one script per line
// using the AST's own String forms.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zurustar/ira/pkg/ast"
	"github.com/zurustar/ira/pkg/resource"
	"github.com/zurustar/ira/pkg/sb3"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be text, json, or yaml)", s)
}

// Write renders p to w.
func Write(w io.Writer, p *ast.Project, format Format) error {
	switch format {
	case FormatText:
		return writeText(w, p)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Tree(p))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Tree(p)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("invalid format: %s", format)
}

// Tree converts p into maps, slices and scalars. Handles are rendered as
// $id(label).
func Tree(p *ast.Project) map[string]any {
	resources := make([]any, 0, len(p.Resources))
	for _, path := range sortedPaths(p.Resources) {
		resources = append(resources, map[string]any{
			"path": path.String(),
			"size": len(p.Resources[path]),
		})
	}

	sprites := make([]any, 0, len(p.Sprites))
	for _, s := range p.Sprites {
		t := target(s.Variables, s.Lists, s.Broadcasts, s.Definitions, s.Costumes, s.Sounds, s.Blocks)
		t["name"] = s.Name
		sprites = append(sprites, t)
	}

	bg := p.Background
	return map[string]any{
		"extensions": stringsOrEmpty(p.Extensions),
		"meta": map[string]any{
			"semver": p.Meta.Semver,
			"vm":     p.Meta.VM,
			"agent":  p.Meta.Agent,
		},
		"resources":  resources,
		"background": target(bg.Variables, bg.Lists, bg.Broadcasts, bg.Definitions, bg.Costumes, bg.Sounds, bg.Blocks),
		"sprites":    sprites,
	}
}

func target(
	vars map[string]ast.Variable,
	lists map[string]ast.List,
	broadcasts, defs map[string]resource.Path,
	costumes, sounds []ast.Asset,
	items []ast.BlockItem,
) map[string]any {
	v := make(map[string]any, len(vars))
	for name, variable := range vars {
		entry := map[string]any{"path": variable.Path.String(), "value": value(variable.Value)}
		if variable.Cloud {
			entry["cloud"] = true
		}
		v[name] = entry
	}

	l := make(map[string]any, len(lists))
	for name, list := range lists {
		l[name] = map[string]any{
			"path":     list.Path.String(),
			"encoding": list.Contents.Encoding.String(),
			"items":    listItems(list.Contents),
		}
	}

	scripts := make([]any, 0, len(items))
	for _, item := range items {
		scripts = append(scripts, blockItem(item))
	}

	return map[string]any{
		"variables":   v,
		"lists":       l,
		"broadcasts":  paths(broadcasts),
		"definitions": paths(defs),
		"costumes":    assets(costumes),
		"sounds":      assets(sounds),
		"scripts":     scripts,
	}
}

func listItems(c sb3.ListContents) []any {
	out := make([]any, 0, c.Len())
	if c.Encoding == sb3.PairEncoded {
		for _, pair := range c.Pairs {
			out = append(out, []any{value(pair.Key), value(pair.Value)})
		}
		return out
	}
	for _, item := range c.Items {
		out = append(out, value(item))
	}
	return out
}

func blockItem(item ast.BlockItem) map[string]any {
	out := map[string]any{"body": stack(item.Body())}
	switch i := item.(type) {
	case *ast.WhenGreenFlagClicked:
		out["trigger"] = "whenGreenFlagClicked"
	case *ast.WhenKeyPressed:
		out["trigger"] = "whenKeyPressed"
		out["key"] = string(i.Key)
	case *ast.WhenBroadcastReceived:
		out["trigger"] = "whenBroadcastReceived"
		out["broadcast"] = i.Broadcast.String()
	case *ast.WhenThisSpriteClicked:
		out["trigger"] = "whenThisSpriteClicked"
	case *ast.WhenStageClicked:
		out["trigger"] = "whenStageClicked"
	case *ast.WhenCloneStarts:
		out["trigger"] = "whenCloneStarts"
	}
	return out
}

func stack(s ast.BlockStack) []any {
	out := make([]any, 0, s.Len())
	for _, b := range s.Blocks {
		out = append(out, block(b))
	}
	return out
}

func block(b ast.Block) any {
	switch b := b.(type) {
	case *ast.Literal:
		return value(b.Value)
	case *ast.VariableRef:
		return map[string]any{"variable": b.Path.String()}
	case *ast.ListRef:
		return map[string]any{"list": b.Path.String()}
	case *ast.BroadcastRef:
		return map[string]any{"broadcast": b.Path.String()}
	case *ast.Stack:
		return stack(b.Stack)
	case *ast.Operation:
		return map[string]any{"op": string(b.Op), "args": blocks(b.Args)}
	case *ast.ProcedureCall:
		return map[string]any{"call": b.Definition.String(), "args": blocks(b.Args)}
	}
	return b.String()
}

func blocks(bs []ast.Block) []any {
	out := make([]any, 0, len(bs))
	for _, b := range bs {
		out = append(out, block(b))
	}
	return out
}

func value(v sb3.Value) any {
	switch v.Kind() {
	case sb3.KindNumber:
		return v.Num()
	case sb3.KindBool:
		return v.Bool()
	default:
		return v.String()
	}
}

func paths(m map[string]resource.Path) map[string]any {
	out := make(map[string]any, len(m))
	for name, p := range m {
		out[name] = p.String()
	}
	return out
}

func assets(as []ast.Asset) []any {
	out := make([]any, 0, len(as))
	for _, a := range as {
		entry := map[string]any{"name": a.Name}
		if !a.Path.IsZero() {
			entry["path"] = a.Path.String()
		}
		out = append(out, entry)
	}
	return out
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func sortedPaths(m map[resource.Path][]byte) []resource.Path {
	out := make([]resource.Path, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
