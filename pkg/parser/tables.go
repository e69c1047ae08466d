package parser

import (
	"log/slog"
	"sort"

	"github.com/zurustar/ira/pkg/ast"
	"github.com/zurustar/ira/pkg/resolver"
	"github.com/zurustar/ira/pkg/resource"
	"github.com/zurustar/ira/pkg/sb3"
)

// The AST tables are keyed by display name while the raw maps are keyed by
// id. When two ids share a name the smallest id wins.

func variables(log *slog.Logger, t *sb3.Target, s *resolver.Scope) map[string]ast.Variable {
	out := make(map[string]ast.Variable, len(t.Variables))
	for _, id := range sortedIDs(t.Variables) {
		v := t.Variables[id]
		if _, dup := out[v.Name]; dup {
			log.Warn("duplicate variable name", "target", t.Name, "name", v.Name, "id", id)
			continue
		}
		out[v.Name] = ast.Variable{Path: s.Variables[id], Value: v.Value, Cloud: v.Cloud}
	}
	return out
}

func lists(log *slog.Logger, t *sb3.Target, s *resolver.Scope) map[string]ast.List {
	out := make(map[string]ast.List, len(t.Lists))
	for _, id := range sortedIDs(t.Lists) {
		l := t.Lists[id]
		if _, dup := out[l.Name]; dup {
			log.Warn("duplicate list name", "target", t.Name, "name", l.Name, "id", id)
			continue
		}
		out[l.Name] = ast.List{Path: s.Lists[id], Contents: l.Contents}
	}
	return out
}

func broadcasts(log *slog.Logger, t *sb3.Target, s *resolver.Scope) map[string]resource.Path {
	out := make(map[string]resource.Path, len(t.Broadcasts))
	for _, id := range sortedIDs(t.Broadcasts) {
		name := t.Broadcasts[id]
		if _, dup := out[name]; dup {
			log.Warn("duplicate broadcast name", "target", t.Name, "name", name, "id", id)
			continue
		}
		out[name] = s.Broadcasts[id]
	}
	return out
}

func costumes(t *sb3.Target, byName map[string]resource.Path) []ast.Asset {
	out := make([]ast.Asset, 0, len(t.Costumes))
	for _, c := range t.Costumes {
		entry := c.MD5Ext
		if entry == "" {
			entry = c.AssetID + "." + c.DataFormat.String()
		}
		out = append(out, ast.Asset{Name: c.Name, Path: byName[entry]})
	}
	return out
}

func sounds(t *sb3.Target, byName map[string]resource.Path) []ast.Asset {
	out := make([]ast.Asset, 0, len(t.Sounds))
	for _, s := range t.Sounds {
		entry := s.MD5Ext
		if entry == "" {
			entry = s.AssetID + "." + s.DataFormat
		}
		out = append(out, ast.Asset{Name: s.Name, Path: byName[entry]})
	}
	return out
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
