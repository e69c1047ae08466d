package resource

import (
	"sync"
	"testing"
)

func TestIntern_DistinctForSameLabel(t *testing.T) {
	in := NewInterner()
	a := in.Intern("score")
	b := in.Intern("score")

	if a == b || a.Equal(b) {
		t.Errorf("two interns of the same label must differ: %v %v", a, b)
	}
	if a.Label() != "score" || in.Label(b) != "score" {
		t.Errorf("labels = %q %q", a.Label(), in.Label(b))
	}
	if in.ID(a) != 1 || b.ID() != 2 {
		t.Errorf("ids = %d %d, want 1 2", in.ID(a), b.ID())
	}
	if in.Count() != 2 {
		t.Errorf("Count() = %d, want 2", in.Count())
	}
}

func TestPath_CopiesCompareEqual(t *testing.T) {
	in := NewInterner()
	a := in.Intern("x")
	c := a

	if c != a || !c.Equal(a) {
		t.Error("a copy must compare equal to its original")
	}

	m := map[Path]int{a: 1}
	if m[c] != 1 {
		t.Error("a copy must find the original's map entry")
	}
}

func TestPath_Rendering(t *testing.T) {
	in := NewInterner()
	in.Intern("first")
	p := in.Intern("my variable")

	if got := p.String(); got != "$2(my variable)" {
		t.Errorf("String() = %q", got)
	}
	if got := p.JSName(); got != "$2" {
		t.Errorf("JSName() = %q", got)
	}
	var zero Path
	if !zero.IsZero() || p.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestInterner_Concurrent(t *testing.T) {
	in := NewInterner()
	const workers, perWorker = 8, 500

	results := make([][]Path, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results[w] = append(results[w], in.Intern("v"))
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for _, paths := range results {
		for _, p := range paths {
			if seen[p.ID()] {
				t.Fatalf("id %d issued twice", p.ID())
			}
			seen[p.ID()] = true
		}
	}
	if len(seen) != workers*perWorker || in.Count() != workers*perWorker {
		t.Errorf("issued %d ids, Count() = %d", len(seen), in.Count())
	}
}
