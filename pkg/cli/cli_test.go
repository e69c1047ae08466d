package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseArgs コマンドを実行して解決済みの設定を取り出す
func parseArgs(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var got *Config
	cmd := NewCommand(func(_ context.Context, cfg *Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return nil, err
	}
	return got, nil
}

func clearEnv(t *testing.T) {
	for _, name := range []string{EnvLogLevel, EnvFormat, EnvWorkers} {
		t.Setenv(name, "")
	}
}

func TestParseArgs_ValidArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name:     "デフォルト設定",
			args:     []string{"game.sb3"},
			expected: Config{Source: "game.sb3", LogLevel: "info", Format: "text"},
		},
		{
			name:     "ログレベル指定（短縮形）",
			args:     []string{"-l", "debug", "game.sb3"},
			expected: Config{Source: "game.sb3", LogLevel: "debug", Format: "text"},
		},
		{
			name:     "フラグは位置引数の後でもよい",
			args:     []string{"game.sb3", "--format", "JSON", "-o", "out.json"},
			expected: Config{Source: "game.sb3", LogLevel: "info", Format: "json", Output: "out.json"},
		},
		{
			name:     "並列数と監視",
			args:     []string{"-w", "3", "--watch", "./game"},
			expected: Config{Source: "./game", LogLevel: "info", Format: "text", Workers: 3, Watch: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := parseArgs(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *cfg)
		})
	}
}

func TestParseArgs_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"ソースなし", nil},
		{"ソースが複数", []string{"a.sb3", "b.sb3"}},
		{"不正なログレベル", []string{"-l", "verbose", "a.sb3"}},
		{"不正な出力形式", []string{"-f", "xml", "a.sb3"}},
		{"負の並列数", []string{"-w", "-1", "a.sb3"}},
		{"存在しない設定ファイル", []string{"--config", "/nonexistent/ira.yaml", "a.sb3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := parseArgs(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestParseArgs_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ira.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: error\nformat: yaml\nworkers: 2\noutput: from-file.yaml\n"), 0o644))

	t.Run("設定ファイル", func(t *testing.T) {
		clearEnv(t)
		cfg, err := parseArgs(t, "--config", path, "game.sb3")
		require.NoError(t, err)
		assert.Equal(t, Config{
			Source: "game.sb3", LogLevel: "error", Format: "yaml", Workers: 2,
			Output: "from-file.yaml", ConfigFile: path,
		}, *cfg)
	})

	t.Run("環境変数は設定ファイルより優先", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvFormat, "json")
		t.Setenv(EnvWorkers, "8")
		cfg, err := parseArgs(t, "--config", path, "game.sb3")
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("フラグは環境変数より優先", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvLogLevel, "warn")
		t.Setenv(EnvWorkers, "8")
		cfg, err := parseArgs(t, "--config", path, "-l", "debug", "-w", "1", "game.sb3")
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 1, cfg.Workers)
	})

	t.Run("不正な環境変数", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvWorkers, "many")
		_, err := parseArgs(t, "game.sb3")
		assert.ErrorContains(t, err, EnvWorkers)
	})
}
