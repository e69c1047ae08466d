// Package parser assembles an ast.Project from the entries of an sb3 archive.
//
// The stage is resolved first because its scope is the global scope of every
// sprite. Sprites are then resolved concurrently; they share nothing but the
// interner, and the result keeps their order in project.json.
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/zurustar/ira/pkg/ast"
	"github.com/zurustar/ira/pkg/diag"
	"github.com/zurustar/ira/pkg/resolver"
	"github.com/zurustar/ira/pkg/resource"
	"github.com/zurustar/ira/pkg/sb3"
)

// ProjectEntry is the archive entry holding the project descriptor.
const ProjectEntry = "project.json"

// Parser turns archive entries into a resolved project.
type Parser struct {
	log      *slog.Logger
	workers  int
	interner *resource.Interner
	notices  diag.Collector
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger. Per-target records carry a "target" attribute.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithWorkers bounds the number of sprites resolved at once.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithInterner makes the parser allocate handles from in. Without it every
// Parse call starts a fresh interner.
func WithInterner(in *resource.Interner) Option {
	return func(p *Parser) { p.interner = in }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		log:     slog.Default(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Notices returns the fallbacks taken while parsing, across all targets.
func (p *Parser) Notices() []diag.Notice { return p.notices.Notices() }

// Parse decodes project.json from entries and resolves every target.
// Any failure aborts the whole parse.
func (p *Parser) Parse(ctx context.Context, entries map[string][]byte) (*ast.Project, error) {
	data, ok := entries[ProjectEntry]
	if !ok {
		return nil, diag.Errorf(diag.MissingProjectDescriptor, "archive has no %s entry", ProjectEntry)
	}
	raw, err := sb3.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ProjectEntry, err)
	}
	stage, err := raw.Stage()
	if err != nil {
		return nil, err
	}

	in := p.interner
	if in == nil {
		in = resource.NewInterner()
	}

	resources, byName := internResources(entries, in)
	p.log.Debug("resources interned", "count", len(resources))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	global := resolver.BuildScope(stage, in)
	stageItems, err := p.resolve(stage, global, nil)
	if err != nil {
		return nil, err
	}

	sprites := raw.Sprites()
	results := make([]ast.Sprite, len(sprites))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, t := range sprites {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local := resolver.BuildScope(t, in)
			items, err := p.resolve(t, local, global)
			if err != nil {
				return err
			}
			results[i] = ast.Sprite{
				Name:        t.Name,
				Variables:   variables(p.log, t, local),
				Lists:       lists(p.log, t, local),
				Broadcasts:  broadcasts(p.log, t, local),
				Blocks:      items,
				Definitions: local.Definitions,
				Costumes:    costumes(t, byName),
				Sounds:      sounds(t, byName),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	project := &ast.Project{
		Resources: resources,
		Sprites:   results,
		Background: ast.Background{
			Variables:   variables(p.log, stage, global),
			Lists:       lists(p.log, stage, global),
			Broadcasts:  broadcasts(p.log, stage, global),
			Blocks:      stageItems,
			Definitions: global.Definitions,
			Costumes:    costumes(stage, byName),
			Sounds:      sounds(stage, byName),
		},
		Extensions: raw.Extensions,
		Meta:       raw.Meta,
	}

	p.log.Info("project parsed",
		"sprites", len(results),
		"resources", len(resources),
		"handles", in.Count(),
		"notices", p.notices.Len())
	return project, nil
}

func (p *Parser) resolve(t *sb3.Target, local, global *resolver.Scope) ([]ast.BlockItem, error) {
	r := resolver.New(t, local, global, resolver.WithLogger(p.log))
	items, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	p.notices.Add(r.Notices()...)
	p.log.Debug("target resolved", "target", t.Name, "scripts", len(items), "blocks", len(t.Blocks))
	return items, nil
}

// internResources gives every entry except the descriptor a handle, in name
// order. byName maps entry names back to their handles.
func internResources(entries map[string][]byte, in *resource.Interner) (map[resource.Path][]byte, map[string]resource.Path) {
	names := make([]string, 0, len(entries))
	for name := range entries {
		if name != ProjectEntry {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	resources := make(map[resource.Path][]byte, len(names))
	byName := make(map[string]resource.Path, len(names))
	for _, name := range names {
		path := in.Intern(name)
		resources[path] = entries[name]
		byName[name] = path
	}
	return resources, byName
}
