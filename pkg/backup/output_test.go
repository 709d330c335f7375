package backup

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestCopyFile tests verbatim copying with directory creation
func TestCopyFile(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	ctx := context.Background()

	src := filepath.Join(srcDir, "item.json")
	content := []byte(`{"startDate": "2024-12-15 00:00:00",  "weird":   "formatting"}`)
	require.NoError(t, os.WriteFile(src, content, 0644))

	tree := NewOutputTree(outDir)
	require.NoError(t, tree.CopyFile(ctx, src, filepath.Join("TimelineItem", "0F", "item.json")))

	got, err := os.ReadFile(filepath.Join(outDir, "TimelineItem", "0F", "item.json"))
	require.NoError(t, err)
	assert.Equal(t, content, got, "the copy preserves original bytes, formatting included")
}

// 🧪 TestCopyFilePreservesModTime tests timestamp preservation
func TestCopyFilePreservesModTime(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	ctx := context.Background()

	src := filepath.Join(srcDir, "item.json")
	require.NoError(t, os.WriteFile(src, []byte("{}"), 0644))
	srcInfo, err := os.Stat(src)
	require.NoError(t, err)

	tree := NewOutputTree(outDir)
	require.NoError(t, tree.CopyFile(ctx, src, "item.json"))

	outInfo, err := os.Stat(filepath.Join(outDir, "item.json"))
	require.NoError(t, err)
	assert.True(t, outInfo.ModTime().Equal(srcInfo.ModTime()), "the copy keeps the source mtime")
}

// 🧪 TestWriteJSON tests re-serialized output
func TestWriteJSON(t *testing.T) {
	outDir := t.TempDir()
	ctx := context.Background()

	tree := NewOutputTree(outDir)
	require.NoError(t, tree.WriteJSON(ctx, filepath.Join("Item", "2024-12.json"), []string{"a", "b"}))

	data, err := os.ReadFile(filepath.Join(outDir, "Item", "2024-12.json"))
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []string{"a", "b"}, got)
}

// 🧪 TestWriteGzipJSON tests the compressed round trip
func TestWriteGzipJSON(t *testing.T) {
	outDir := t.TempDir()
	ctx := context.Background()

	tree := NewOutputTree(outDir)
	samples := []map[string]any{{"date": "2024-12-16 08:00:00"}}
	require.NoError(t, tree.WriteGzipJSON(ctx, filepath.Join("LocomotionSample", "2024-W51.json.gz"), samples))

	f, err := os.Open(filepath.Join(outDir, "LocomotionSample", "2024-W51.json.gz"))
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2024-12-16 08:00:00", got[0]["date"])
}
