package app

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zurustar/ira/pkg/cli"
	"github.com/zurustar/ira/pkg/diag"
)

const testProject = `{
	"targets": [
		{"isStage": true, "name": "Stage", "variables": {}, "lists": {}, "broadcasts": {}, "blocks": {}},
		{"isStage": false, "name": "Cat", "variables": {}, "lists": {}, "broadcasts": {}, "blocks": {
			"hat": {"opcode": "event_whenflagclicked", "next": "clear", "topLevel": true},
			"clear": {"opcode": "pen_clear"}
		}}
	],
	"extensions": ["pen"],
	"meta": {"semver": "3.0.0"}
}`

// syncBuffer 監視モードのゴルーチンと共有するバッファ
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func writeArchive(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestRun_TextDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.sb3")
	writeArchive(t, path, map[string]string{"project.json": testProject, "aa11.png": "png"})

	var stdout, stderr bytes.Buffer
	err := New(WithOutput(&stdout), WithErrorOutput(&stderr)).Run([]string{path})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Sprite Cat")
	assert.Contains(t, stdout.String(), "EvWhenGreenFlagClicked [PenClear]")
	assert.Contains(t, stderr.String(), "Extracting aa11.png")
	assert.Contains(t, stderr.String(), "Extracting project.json")
}

func TestRun_OutputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.sb3")
	out := filepath.Join(dir, "game.json")
	writeArchive(t, path, map[string]string{"project.json": testProject})

	var stdout, stderr bytes.Buffer
	err := New(WithOutput(&stdout), WithErrorOutput(&stderr)).
		Run([]string{"-f", "json", "-o", out, "-l", "warn", path})
	require.NoError(t, err)

	assert.Empty(t, stdout.String())
	assert.NotContains(t, stderr.String(), "Extracting")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"op": "PenClear"`)
}

func TestRun_ReportsErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing descriptor", func(t *testing.T) {
		path := filepath.Join(dir, "empty.sb3")
		writeArchive(t, path, map[string]string{"aa11.png": "png"})

		var stdout, stderr bytes.Buffer
		err := New(WithOutput(&stdout), WithErrorOutput(&stderr)).Run([]string{path})
		require.Error(t, err)
		assert.True(t, errors.Is(err, diag.MissingProjectDescriptor), "got %v", err)
		assert.True(t, strings.HasPrefix(lastLine(stderr.String()), "error: "), "stderr: %q", stderr.String())
	})

	t.Run("cyclic chain", func(t *testing.T) {
		path := filepath.Join(dir, "cycle.sb3")
		project := strings.Replace(testProject, `"clear": {"opcode": "pen_clear"}`,
			`"clear": {"opcode": "pen_clear", "next": "clear"}`, 1)
		writeArchive(t, path, map[string]string{"project.json": project})

		var stdout, stderr bytes.Buffer
		err := New(WithOutput(&stdout), WithErrorOutput(&stderr)).Run([]string{path})
		assert.True(t, errors.Is(err, diag.CyclicBlockChain), "got %v", err)
		assert.Contains(t, stderr.String(), `cyclic block chain in target "Cat"`)
	})

	t.Run("bad flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := New(WithOutput(&stdout), WithErrorOutput(&stderr)).Run([]string{"-f", "xml", "x.sb3"})
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: invalid format")
	})
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return lines[len(lines)-1]
}

func TestWatch_ReparsesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.sb3")
	writeArchive(t, path, map[string]string{"project.json": testProject})

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	app := New(WithOutput(stdout), WithErrorOutput(stderr))
	cfg := &cli.Config{Source: path, LogLevel: "info", Format: "text", Watch: true}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.execute(ctx, cfg) }()

	require.Eventually(t, func() bool {
		return strings.Count(stdout.String(), "Sprite Cat") == 1
	}, 5*time.Second, 20*time.Millisecond)

	updated := strings.Replace(testProject, `"name": "Cat"`, `"name": "Dog"`, 1)
	writeArchive(t, path, map[string]string{"project.json": updated})

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Sprite Dog")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
