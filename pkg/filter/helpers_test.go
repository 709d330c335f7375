package filter

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/walteh/locofilter/pkg/backup"
	"github.com/walteh/locofilter/pkg/daterange"
	"github.com/walteh/locofilter/pkg/report"
)

// 📝 writeFile writes raw bytes, creating parent directories
func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// 📝 writeJSONFile writes v as JSON, creating parent directories
func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	writeFile(t, path, data)
}

// 🗜️ writeGzipJSONFile writes v as gzip-compressed JSON
func writeGzipJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write(data)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

// 🏗️ newBackupRoot creates marker directories for a layout and
// classifies the result
func newBackupRoot(t *testing.T, layout backup.Layout) *backup.Backup {
	t.Helper()
	root := t.TempDir()
	switch layout {
	case backup.LayoutV1:
		require.NoError(t, os.MkdirAll(filepath.Join(root, "TimelineItem"), 0755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "LocomotionSample"), 0755))
	case backup.LayoutV2:
		require.NoError(t, os.MkdirAll(filepath.Join(root, "Item"), 0755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "Sample"), 0755))
	}

	b, err := backup.Detect(context.Background(), root)
	require.NoError(t, err)
	return b
}

// 🔧 newOptions builds stage options with a capturing reporter
func newOptions(t *testing.T, b *backup.Backup, start, end string) (Options, *captureReporter) {
	t.Helper()
	r, err := daterange.ParseRange(start, end)
	require.NoError(t, err)

	reporter := &captureReporter{}
	return Options{
		Backup:   b,
		Output:   backup.NewOutputTree(t.TempDir()),
		Range:    r,
		Reporter: reporter,
	}, reporter
}

// 📢 captureReporter records reporter events for assertions
type captureReporter struct {
	report.Nop
	changes  []report.FileChange
	warnings []string
}

func (c *captureReporter) FileChange(_ context.Context, change report.FileChange) {
	c.changes = append(c.changes, change)
}

func (c *captureReporter) Warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// 🔍 changedPaths returns the paths of changes matching a type
func (c *captureReporter) changedPaths(typ report.FileChangeType) []string {
	var paths []string
	for _, change := range c.changes {
		if change.Type == typ {
			paths = append(paths, change.Path)
		}
	}
	return paths
}
