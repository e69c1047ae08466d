package resolver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/ira/pkg/ast"
	"github.com/zurustar/ira/pkg/diag"
	"github.com/zurustar/ira/pkg/resource"
	"github.com/zurustar/ira/pkg/sb3"
)

// chainTarget builds a flag script whose body alternates pen_clear and
// pen_stamp according to stamps. When loopTo >= 0 the last block links back
// to the block at that index.
func chainTarget(stamps []bool, loopTo int) *sb3.Target {
	blocks := make(map[string]sb3.Block, len(stamps)+1)
	id := func(i int) string { return fmt.Sprintf("b%03d", i) }

	hat := sb3.Block{Opcode: opcodeWhenFlagClicked, TopLevel: true}
	if len(stamps) > 0 {
		first := id(0)
		hat.Next = &first
	}
	blocks["hat"] = hat

	for i, stamp := range stamps {
		b := sb3.Block{Opcode: "pen_clear"}
		if stamp {
			b.Opcode = "pen_stamp"
		}
		switch {
		case i+1 < len(stamps):
			next := id(i + 1)
			b.Next = &next
		case loopTo >= 0:
			next := id(loopTo)
			b.Next = &next
		}
		blocks[id(i)] = b
	}
	return &sb3.Target{Name: "Prop", Blocks: blocks}
}

func TestProperty_ChainPreservesOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("body lists every chained block in next order", prop.ForAll(
		func(stamps []bool) bool {
			tgt := chainTarget(stamps, -1)
			scope := BuildScope(tgt, resource.NewInterner())
			items, err := New(tgt, scope, nil).Resolve()
			if err != nil || len(items) != 1 {
				return false
			}
			body := items[0].Body()
			if body.Len() != len(stamps) {
				return false
			}
			for i, stamp := range stamps {
				want := ast.PenClear
				if stamp {
					want = ast.PenStamp
				}
				op, ok := body.Blocks[i].(*ast.Operation)
				if !ok || op.Op != want {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestProperty_ChainCycleAlwaysDetected(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("a chain that links back is rejected", prop.ForAll(
		func(n int, back int) bool {
			stamps := make([]bool, n)
			tgt := chainTarget(stamps, back%n)
			scope := BuildScope(tgt, resource.NewInterner())
			_, err := New(tgt, scope, nil).Resolve()
			return errors.Is(err, diag.CyclicBlockChain)
		},
		gen.IntRange(1, 50),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
