package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce 連続した書き込みをまとめる時間
const watchDebounce = 300 * time.Millisecond

// watch ソースの変更を監視し、変更のたびに再解析する
// 解析エラーは表示するだけで監視は続ける。ctxがキャンセルされると終了する
func (app *Application) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	source := filepath.Clean(app.config.Source)
	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", source, err)
	}

	// ファイルはエディタの置き換え保存に備えて親ディレクトリを監視する
	dir, match := source, func(string) bool { return true }
	if !info.IsDir() {
		dir = filepath.Dir(source)
		match = func(name string) bool { return filepath.Clean(name) == source }
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	app.log.Info("Watching for changes", "path", source)

	app.runAndReport(ctx)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			app.log.Info("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !match(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			app.log.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			app.log.Error("Watcher error", "error", err)

		case <-timer.C:
			app.runAndReport(ctx)
		}
	}
}

// runAndReport 一回解析し、失敗したらエラーを表示する
func (app *Application) runAndReport(ctx context.Context) {
	if err := app.runOnce(ctx); err != nil {
		app.reportError(err)
	}
}
