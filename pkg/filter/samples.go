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

package filter

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/walteh/locofilter/pkg/daterange"
	"github.com/walteh/locofilter/pkg/record"
	"gitlab.com/tozd/go/errors"
)

// 📊 SampleStats summarizes the sample stage
type SampleStats struct {
	// Samples is the count of surviving locomotion samples
	Samples int
	// Weeks is the count of week files that contributed survivors
	Weeks int
}

// 🎯 SampleFilter walks the weekly compressed sample archives, keeps
// every sample whose timestamp falls inside the range, and writes the
// surviving subset per original week file. Both layouts use the same
// weekly scheme; only the directory name differs.
type SampleFilter struct {
	opts Options
}

// 🏭 NewSampleFilter creates the sample stage
func NewSampleFilter(opts Options) *SampleFilter {
	return &SampleFilter{opts: opts}
}

// 🏃 Execute runs the sample stage
func (f *SampleFilter) Execute(ctx context.Context) (*SampleStats, error) {
	f.opts.reporter().Stagef("Filtering locomotion samples, range %s", f.opts.Range)

	samplesDir := f.opts.Backup.SamplesDir()
	entries, err := os.ReadDir(samplesDir)
	if err != nil {
		return nil, errors.Errorf("reading sample storage: %w", err)
	}

	weekFiles := f.weekFilesForRange(entries)
	f.opts.reporter().Infof("Processing %d week files", len(weekFiles))

	stats := &SampleStats{}
	for _, name := range weekFiles {
		res := f.processWeekFile(ctx, name)
		f.opts.emit(ctx, res)
		if res.Records > 0 {
			stats.Samples += res.Records
			stats.Weeks++
		}
	}

	f.opts.reporter().Infof("Kept %d samples from %d week files", stats.Samples, stats.Weeks)
	return stats, nil
}

// 📆 weekFilesForRange selects the week archives whose ISO week span
// overlaps the range. Names that fail to parse are warned about and
// left out.
func (f *SampleFilter) weekFilesForRange(entries []os.DirEntry) []string {
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json.gz") {
			continue
		}

		year, week, ok := daterange.ParseWeekFileName(entry.Name())
		if !ok {
			f.opts.reporter().Warnf("Could not parse week file name: %s", entry.Name())
			continue
		}

		weekStart, weekEnd := daterange.WeekSpan(year, week)
		if f.opts.Range.Overlaps(weekStart, weekEnd) {
			names = append(names, entry.Name())
		}
	}
	return names
}

// 📄 processWeekFile filters one compressed weekly archive
func (f *SampleFilter) processWeekFile(ctx context.Context, name string) FileResult {
	relPath := path.Join(f.opts.Backup.SampleDirName(), name)
	srcPath := filepath.Join(f.opts.Backup.SamplesDir(), name)

	if f.opts.shouldSkip(ctx, relPath) {
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "excluded by pattern"}
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "stat failed", Err: err}
	}
	if info.Size() == 0 {
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "empty file"}
	}

	raws, err := readGzipArray(srcPath)
	if err != nil {
		f.opts.reporter().Warnf("Corrupted week file %s: %v", name, err)
		return FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "corrupted archive", Err: err}
	}

	kept := make([]json.RawMessage, 0, len(raws))
	for _, raw := range raws {
		var sample record.Sample
		if err := json.Unmarshal(raw, &sample); err != nil {
			continue
		}
		at, ok := daterange.Parse(sample.Date)
		if ok && f.opts.Range.Contains(at) {
			kept = append(kept, raw)
		}
	}

	if len(kept) == 0 {
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "no samples in range"}
	}

	if err := f.opts.Output.WriteGzipJSON(ctx, relPath, kept); err != nil {
		return FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "write failed", Err: err}
	}
	return FileResult{Path: relPath, Outcome: OutcomeWritten, Records: len(kept)}
}

// 🗜️ readGzipArray decompresses and decodes a JSON array file
func readGzipArray(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Errorf("reading gzip header: %w", err)
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, errors.Errorf("decompressing: %w", err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, errors.Errorf("decoding JSON array: %w", err)
	}
	return raws, nil
}
