package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/zurustar/ira/pkg/archive"
	"github.com/zurustar/ira/pkg/ast"
	"github.com/zurustar/ira/pkg/cli"
	"github.com/zurustar/ira/pkg/dump"
	"github.com/zurustar/ira/pkg/logger"
	"github.com/zurustar/ira/pkg/parser"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config *cli.Config
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer

	errorLabel lipgloss.Style
	extractTag lipgloss.Style
}

// Option はApplicationの設定を変更する
type Option func(*Application)

// WithOutput ダンプ結果の出力先を指定
func WithOutput(w io.Writer) Option {
	return func(app *Application) { app.stdout = w }
}

// WithErrorOutput ログとエラー表示の出力先を指定
func WithErrorOutput(w io.Writer) Option {
	return func(app *Application) { app.stderr = w }
}

// New Applicationを作成
func New(opts ...Option) *Application {
	app := &Application{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}

	// 出力先が端末でなければ色は付かない
	r := lipgloss.NewRenderer(app.stderr)
	app.errorLabel = r.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	app.extractTag = r.NewStyle().Foreground(lipgloss.Color("10"))
	return app
}

// Run アプリケーションを実行
// エラーは表示した上で返す。終了コードの決定は呼び出し側が行う
func (app *Application) Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewCommand(app.execute)
	cmd.SetArgs(args)
	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		app.reportError(err)
		return err
	}
	return nil
}

// execute 設定の解決後に呼び出される
func (app *Application) execute(ctx context.Context, cfg *cli.Config) error {
	app.config = cfg

	// 1. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Debug("Application started", "source", cfg.Source, "format", cfg.Format, "workers", cfg.Workers)

	// 2. 監視モード
	if cfg.Watch {
		return app.watch(ctx)
	}

	// 3. 一回だけ解析
	return app.runOnce(ctx)
}

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	if err := logger.InitLoggerWithWriter(app.config.LogLevel, app.stderr); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// runOnce 読み込み・解析・出力を一回行う
func (app *Application) runOnce(ctx context.Context) error {
	log := app.log.With("run", uuid.NewString())

	// 1. アーカイブの読み込み
	a, err := archive.Load(app.config.Source, archive.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to load archive: %w", err)
	}
	if log.Enabled(ctx, slog.LevelInfo) {
		for _, name := range a.Names() {
			fmt.Fprintf(app.stderr, "%s %s\n", app.extractTag.Render("Extracting"), name)
		}
	}

	entries, err := a.ParserEntries()
	if err != nil {
		return fmt.Errorf("failed to read project: %w", err)
	}

	// 2. 解析
	p := parser.New(parser.WithLogger(log), parser.WithWorkers(app.config.Workers))
	project, err := p.Parse(ctx, entries)
	if err != nil {
		return fmt.Errorf("failed to parse project: %w", err)
	}
	for _, n := range p.Notices() {
		log.Debug("Fallback", "notice", n.String())
	}

	// 3. 出力
	if err := app.write(project); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Info("Done", "sprites", len(project.Sprites), "notices", len(p.Notices()))
	return nil
}

// write ダンプを出力先に書き込む
func (app *Application) write(project *ast.Project) error {
	format := dump.Format(app.config.Format)
	if app.config.Output == "" {
		return dump.Write(app.stdout, project, format)
	}

	f, err := os.Create(app.config.Output)
	if err != nil {
		return err
	}
	if err := dump.Write(f, project, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// reportError エラーを表示
func (app *Application) reportError(err error) {
	fmt.Fprintf(app.stderr, "%s %v\n", app.errorLabel.Render("error:"), err)
}
