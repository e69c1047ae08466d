// Package archive はsb3アーカイブ（zip）または展開済みディレクトリからエントリを読み込む
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/zurustar/ira/pkg/diag"
)

// DescriptorName はプロジェクト記述ファイルのエントリ名
const DescriptorName = "project.json"

// Archive は読み込まれたアーカイブを表す
type Archive struct {
	Source  string            // 読み込み元のパス
	Entries map[string][]byte // エントリ名 -> 内容（スラッシュ区切り）
}

// Option はLoadの動作を変更する
type Option func(*loader)

type loader struct {
	log *slog.Logger
}

// WithLogger エントリ読み込み時に使うロガーを指定
func WithLogger(l *slog.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// Load パスがディレクトリなら展開済みプロジェクトとして、それ以外はzipとして読み込む
func Load(path string, opts ...Option) (*Archive, error) {
	ld := &loader{log: slog.Default()}
	for _, opt := range opts {
		opt(ld)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, diag.Wrap(diag.UnreadableArchive, err, "stat %s", path)
	}

	var entries map[string][]byte
	if info.IsDir() {
		entries, err = ld.loadDir(path)
	} else {
		entries, err = ld.loadZip(path)
	}
	if err != nil {
		return nil, err
	}

	ld.log.Debug("Archive loaded", "source", path, "entries", len(entries))
	return &Archive{Source: path, Entries: entries}, nil
}

// loadZip zipファイルの全エントリを読み込む
func (ld *loader) loadZip(path string) (map[string][]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, diag.Wrap(diag.UnreadableArchive, err, "open %s", path)
	}
	defer r.Close()

	entries := make(map[string][]byte, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readZipEntry(f)
		if err != nil {
			return nil, diag.Wrap(diag.UnreadableArchive, err, "extract %s", f.Name)
		}
		name := strings.TrimPrefix(f.Name, "/")
		entries[name] = data
		ld.log.Debug("Archive entry", "name", name, "size", len(data))
	}
	return entries, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// loadDir ディレクトリ配下の全ファイルを読み込む
func (ld *loader) loadDir(root string) (map[string][]byte, error) {
	entries := make(map[string][]byte)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		entries[name] = data
		ld.log.Debug("Archive entry", "name", name, "size", len(data))
		return nil
	})
	if err != nil {
		return nil, diag.Wrap(diag.UnreadableArchive, err, "read directory %s", root)
	}
	return entries, nil
}

// Names エントリ名を昇順で返す
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.Entries))
	for name := range a.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// descriptorKey project.jsonのエントリ名を探す（大文字小文字を無視）
func (a *Archive) descriptorKey() (string, bool) {
	if _, ok := a.Entries[DescriptorName]; ok {
		return DescriptorName, true
	}
	for _, name := range a.Names() {
		if strings.EqualFold(name, DescriptorName) {
			return name, true
		}
	}
	return "", false
}

// Project BOMを取り除きUTF-8に変換したproject.jsonを返す
func (a *Archive) Project() ([]byte, error) {
	key, ok := a.descriptorKey()
	if !ok {
		return nil, diag.Errorf(diag.MissingProjectDescriptor, "%s has no %s entry", a.Source, DescriptorName)
	}
	data, err := toUTF8(a.Entries[key])
	if err != nil {
		return nil, diag.Wrap(diag.InvalidProjectFormat, err, "decode %s", key)
	}
	return data, nil
}

// Resources project.json以外のエントリを返す
func (a *Archive) Resources() map[string][]byte {
	key, _ := a.descriptorKey()
	out := make(map[string][]byte, len(a.Entries))
	for name, data := range a.Entries {
		if name != key {
			out[name] = data
		}
	}
	return out
}

// ParserEntries パーサーに渡すエントリを返す。project.jsonは正規化した名前と内容に置き換える
func (a *Archive) ParserEntries() (map[string][]byte, error) {
	project, err := a.Project()
	if err != nil {
		return nil, err
	}
	entries := a.Resources()
	entries[DescriptorName] = project
	return entries, nil
}

// toUTF8 BOMに従ってUTF-8/UTF-16をUTF-8に変換する。BOMがなければUTF-8とみなす
func toUTF8(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode text: %w", err)
	}
	return out, nil
}
