package dump

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/zurustar/ira/pkg/ast"
	"github.com/zurustar/ira/pkg/resource"
)

func writeText(w io.Writer, p *ast.Project) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Background")
	bg := p.Background
	writeTarget(bw, bg.Variables, bg.Lists, bg.Broadcasts, bg.Blocks)

	for _, s := range p.Sprites {
		fmt.Fprintf(bw, "Sprite %s\n", s.Name)
		writeTarget(bw, s.Variables, s.Lists, s.Broadcasts, s.Blocks)
	}
	return bw.Flush()
}

func writeTarget(
	w io.Writer,
	vars map[string]ast.Variable,
	lists map[string]ast.List,
	broadcasts map[string]resource.Path,
	items []ast.BlockItem,
) {
	for _, name := range sortedKeys(vars) {
		v := vars[name]
		cloud := ""
		if v.Cloud {
			cloud = " (cloud)"
		}
		fmt.Fprintf(w, "  var %s = %s%s\n", v.Path, v.Value, cloud)
	}
	for _, name := range sortedKeys(lists) {
		l := lists[name]
		fmt.Fprintf(w, "  list %s [%d %s]\n", l.Path, l.Contents.Len(), l.Contents.Encoding)
	}
	for _, name := range sortedKeys(broadcasts) {
		fmt.Fprintf(w, "  broadcast %s\n", broadcasts[name])
	}
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
