package sb3

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Every literal sub-tag 4..10 decodes to the same literal representation;
// only the recorded tag differs.
func TestProperty_LiteralTagsShareRepresentation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("literal tags 4..10 decode to a literal payload", prop.ForAll(
		func(tag int, text string) bool {
			raw, err := json.Marshal([]any{tag, text})
			if err != nil {
				return false
			}
			p, err := DecodePayload(raw)
			if err != nil {
				return false
			}
			return p.Kind == PayloadLiteral && p.Tag == tag && p.Value.Equal(Str(text))
		},
		gen.IntRange(TagMathNumber, TagText),
		gen.AnyString(),
	))

	properties.Property("same literal under two tags yields equal values", prop.ForAll(
		func(a, b int, n float64) bool {
			pa, errA := DecodePayload(json.RawMessage(fmt.Sprintf("[%d, %v]", a, n)))
			pb, errB := DecodePayload(json.RawMessage(fmt.Sprintf("[%d, %v]", b, n)))
			if errA != nil || errB != nil {
				return false
			}
			return pa.Kind == pb.Kind && pa.Value.Equal(pb.Value)
		},
		gen.IntRange(TagMathNumber, TagText),
		gen.IntRange(TagMathNumber, TagText),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("bare strings are always block references", prop.ForAll(
		func(id string) bool {
			raw, err := json.Marshal(id)
			if err != nil {
				return false
			}
			p, err := DecodePayload(raw)
			return err == nil && p.Kind == PayloadBlock && p.BlockID == id
		},
		gen.AnyString(),
	))

	properties.Property("tags outside the known set are rejected", prop.ForAll(
		func(tag int) bool {
			_, err := DecodePayload(json.RawMessage(fmt.Sprintf(`[%d, "x"]`, tag)))
			return err != nil
		},
		gen.OneGenOf(gen.IntRange(0, TagMathNumber-1), gen.IntRange(TagList+1, 500)),
	))

	properties.TestingRun(t)
}
