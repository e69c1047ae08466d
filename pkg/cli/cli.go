package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zurustar/ira/pkg/dump"
	"github.com/zurustar/ira/pkg/logger"
)

// Config はコマンドライン引数・環境変数・設定ファイルから解決された設定を保持する
type Config struct {
	Source     string `yaml:"-"`         // .sb3ファイルまたは展開済みディレクトリのパス
	LogLevel   string `yaml:"log_level"` // ログレベル（debug, info, warn, error）
	Format     string `yaml:"format"`    // 出力形式（text, json, yaml）
	Output     string `yaml:"output"`    // 出力先ファイル（空なら標準出力）
	Workers    int    `yaml:"workers"`   // スプライトの並列解決数（0はCPU数）
	Watch      bool   `yaml:"watch"`     // 変更を監視して再解析する
	ConfigFile string `yaml:"-"`         // 読み込んだ設定ファイル
}

// 環境変数名
const (
	EnvLogLevel = "IRA_LOG_LEVEL"
	EnvFormat   = "IRA_FORMAT"
	EnvWorkers  = "IRA_WORKERS"
)

// DefaultConfig デフォルト設定を返す
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Format:   string(dump.FormatText),
	}
}

// RunFunc 設定の解決後に呼び出される処理
type RunFunc func(ctx context.Context, cfg *Config) error

// NewCommand ルートコマンドを作成
// 優先順位: フラグ > 環境変数 > 設定ファイル > デフォルト
func NewCommand(run RunFunc) *cobra.Command {
	flags := DefaultConfig()

	cmd := &cobra.Command{
		Use:   "ira [flags] <source>",
		Short: "Resolve a Scratch 3 project into an AST",
		Long: `ira reads a Scratch 3 project (.sb3 archive or extracted directory),
resolves every script into a typed AST and prints it.`,
		Example: `  ira game.sb3
  ira --format json -o game.json game.sb3
  ira --watch --log-level debug ./game
  IRA_WORKERS=4 ira game.sb3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, flags, args[0])
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.LogLevel, "log-level", "l", flags.LogLevel, "log level: debug, info, warn, error")
	f.StringVarP(&flags.Format, "format", "f", flags.Format, "output format: text, json, yaml")
	f.StringVarP(&flags.Output, "output", "o", "", "write output to a file instead of stdout")
	f.IntVarP(&flags.Workers, "workers", "w", 0, "sprites resolved in parallel (0 = number of CPUs)")
	f.BoolVar(&flags.Watch, "watch", false, "re-parse whenever the source changes")
	f.StringVar(&flags.ConfigFile, "config", "", "YAML config file")

	return cmd
}

// resolve 設定ファイル・環境変数・フラグを順に適用して検証する
func resolve(cmd *cobra.Command, flags *Config, source string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Source = source

	if flags.ConfigFile != "" {
		if err := loadFile(flags.ConfigFile, cfg); err != nil {
			return nil, err
		}
		cfg.ConfigFile = flags.ConfigFile
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// 明示的に指定されたフラグのみ上書き
	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if changed("format") {
		cfg.Format = flags.Format
	}
	if changed("output") {
		cfg.Output = flags.Output
	}
	if changed("workers") {
		cfg.Workers = flags.Workers
	}
	if changed("watch") {
		cfg.Watch = flags.Watch
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile YAML設定ファイルを読み込む
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv 環境変数からの設定を適用
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %q is not a number", EnvWorkers, v)
		}
		cfg.Workers = n
	}
	return nil
}

// Validate 設定値を検証して正規化する
func (c *Config) Validate() error {
	var errs []error

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w (must be debug, info, warn, or error)", err))
	} else {
		c.LogLevel = strings.ToLower(c.LogLevel)
	}

	if f, err := dump.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	} else {
		c.Format = string(f)
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be non-negative, got %d", c.Workers))
	}
	if c.Source == "" {
		errs = append(errs, errors.New("source path is required"))
	}

	return errors.Join(errs...)
}
