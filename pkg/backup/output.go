// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backup

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 OutputTree writes the filtered backup under a fresh root,
// mirroring the source's bucket and file naming scheme. Directories
// are created on demand. The tree is exclusive to one run; nothing
// reads it concurrently.
type OutputTree struct {
	baseDir string
	made    map[string]struct{} // dirs already created this run
}

// 🏭 NewOutputTree creates a writer rooted at baseDir
func NewOutputTree(baseDir string) *OutputTree {
	return &OutputTree{
		baseDir: filepath.Clean(baseDir),
		made:    make(map[string]struct{}),
	}
}

// 📁 Root returns the output root path
func (t *OutputTree) Root() string {
	return t.baseDir
}

// 📁 Path resolves a relative path inside the output tree
func (t *OutputTree) Path(parts ...string) string {
	return filepath.Join(append([]string{t.baseDir}, parts...)...)
}

// 📄 CopyFile copies a source file byte-for-byte to relPath inside the
// output tree, preserving the source's modification time.
func (t *OutputTree) CopyFile(ctx context.Context, src, relPath string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return errors.Errorf("reading source file: %w", err)
	}

	absPath := t.Path(relPath)
	if err := t.ensureDir(filepath.Dir(absPath)); err != nil {
		return err
	}
	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return errors.Errorf("writing file: %w", err)
	}

	if info, err := os.Stat(src); err == nil {
		// keep the original timestamp so the copy stays a faithful backup
		_ = os.Chtimes(absPath, info.ModTime(), info.ModTime())
	}

	zerolog.Ctx(ctx).Trace().Str("src", src).Str("dest", absPath).Msg("copied file")
	return nil
}

// 📝 WriteJSON serializes v as JSON to relPath inside the output tree
func (t *OutputTree) WriteJSON(ctx context.Context, relPath string, v any) error {
	content, err := json.Marshal(v)
	if err != nil {
		return errors.Errorf("marshaling JSON: %w", err)
	}

	absPath := t.Path(relPath)
	if err := t.ensureDir(filepath.Dir(absPath)); err != nil {
		return err
	}
	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return errors.Errorf("writing file: %w", err)
	}

	zerolog.Ctx(ctx).Trace().Str("dest", absPath).Msg("wrote JSON file")
	return nil
}

// 🗜️ WriteGzipJSON serializes v as gzip-compressed JSON to relPath
func (t *OutputTree) WriteGzipJSON(ctx context.Context, relPath string, v any) error {
	content, err := json.Marshal(v)
	if err != nil {
		return errors.Errorf("marshaling JSON: %w", err)
	}

	absPath := t.Path(relPath)
	if err := t.ensureDir(filepath.Dir(absPath)); err != nil {
		return err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return errors.Errorf("creating file: %w", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write(content); err != nil {
		gz.Close()
		f.Close()
		return errors.Errorf("writing compressed content: %w", err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return errors.Errorf("flushing gzip stream: %w", err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing file: %w", err)
	}

	zerolog.Ctx(ctx).Trace().Str("dest", absPath).Msg("wrote compressed JSON file")
	return nil
}

// 📁 ensureDir creates a directory (and parents) once per run
func (t *OutputTree) ensureDir(dir string) error {
	if _, ok := t.made[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	t.made[dir] = struct{}{}
	return nil
}
