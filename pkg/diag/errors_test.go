package diag

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// TestError_Error tests the Error() method of Error.
func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "kind only",
			err:      &Error{Kind: CyclicBlockChain},
			contains: []string{"cyclic block chain"},
		},
		{
			name:     "unresolved reference",
			err:      NewUnresolved("variable", "score", "v1").WithTarget("Cat"),
			contains: []string{"unresolved reference", `"score"`, `target "Cat"`, `"v1"`},
		},
		{
			name:     "missing input",
			err:      NewMissingInput("b1", "motion_movesteps", "STEPS"),
			contains: []string{"invalid input format", `block "b1"`, "motion_movesteps", "STEPS"},
		},
		{
			name:     "wrapped cause",
			err:      Wrap(UnreadableArchive, errors.New("zip: not a valid zip file"), "open %s", "a.sb3"),
			contains: []string{"unreadable archive", "open a.sb3", "zip: not a valid zip file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want it to contain %q", msg, want)
				}
			}
		})
	}
}

func TestError_IsKind(t *testing.T) {
	err := fmt.Errorf("parse: %w", NewCycle("a"))

	if !errors.Is(err, CyclicBlockChain) {
		t.Error("errors.Is should match the wrapped kind")
	}
	if errors.Is(err, InvalidInputFormat) {
		t.Error("errors.Is should not match a different kind")
	}

	var de *Error
	if !errors.As(err, &de) {
		t.Fatal("errors.As should find *Error")
	}
	if de.BlockID != "a" {
		t.Errorf("BlockID = %q, want %q", de.BlockID, "a")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(InvalidProjectFormat, cause, "decode")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestError_WithTargetKeepsExisting(t *testing.T) {
	err := (&Error{Kind: InvalidInputFormat, Target: "Stage"}).WithTarget("Cat")
	if err.Target != "Stage" {
		t.Errorf("Target = %q, want %q", err.Target, "Stage")
	}
}

func TestKind_String(t *testing.T) {
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("String() = %q", got)
	}
	if got := MissingProjectDescriptor.Error(); got != "missing project descriptor" {
		t.Errorf("Error() = %q", got)
	}
}

func TestPosition(t *testing.T) {
	src := []byte("ab\ncd\nef")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{7, 3, 2},
		{100, 3, 3},
	}
	for _, tt := range tests {
		line, col := Position(src, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestErrorContext(t *testing.T) {
	src := []byte("{\n  \"targets\": [1 2]\n}")
	ctx := ErrorContext(src, 17)

	if !strings.Contains(ctx, "> 2 |") {
		t.Errorf("context should mark line 2:\n%s", ctx)
	}
	if !strings.Contains(ctx, "^") {
		t.Errorf("context should contain a pointer:\n%s", ctx)
	}
	if !strings.Contains(ctx, "  1 | {") {
		t.Errorf("context should include the previous line:\n%s", ctx)
	}
}

func TestErrorContext_LongLine(t *testing.T) {
	src := []byte(strings.Repeat("x", 500) + "!" + strings.Repeat("y", 500))
	ctx := ErrorContext(src, 500)

	lines := strings.Split(strings.TrimRight(ctx, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), ctx)
	}
	if len(lines[0]) > 2*contextWindow+10 {
		t.Errorf("long line was not clipped: %d bytes", len(lines[0]))
	}
	caret := strings.Index(lines[1], "^")
	bang := strings.Index(lines[0], "!")
	if caret != bang {
		t.Errorf("caret at %d, offending byte at %d", caret, bang)
	}
}

func TestErrorContext_Empty(t *testing.T) {
	if got := ErrorContext(nil, 0); got != "" {
		t.Errorf("ErrorContext(nil) = %q, want empty", got)
	}
}

func TestCollector_Concurrent(t *testing.T) {
	var c Collector
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Add(Notice{BlockID: fmt.Sprint(i)})
		}(i)
	}
	wg.Wait()

	if c.Len() != 16 {
		t.Errorf("Len() = %d, want 16", c.Len())
	}
	snap := c.Notices()
	snap[0].BlockID = "mutated"
	if c.Notices()[0].BlockID == "mutated" {
		t.Error("Notices() must return a copy")
	}
}
