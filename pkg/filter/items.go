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
	"context"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/locofilter/pkg/backup"
	"github.com/walteh/locofilter/pkg/daterange"
	"github.com/walteh/locofilter/pkg/record"
	"gitlab.com/tozd/go/errors"
)

// 📊 ItemStats summarizes the item stage
type ItemStats struct {
	// Items is the count of surviving timeline items
	Items int
	// Groups is the count of buckets (v1) or month files (v2) that
	// contributed at least one surviving item
	Groups int
	// Places is the set of place identifiers referenced by survivors
	Places record.PlaceSet
}

// 🎯 ItemFilter walks the item storage of the detected layout, keeps
// every item whose span overlaps the range, and collects the place
// identifiers the survivors reference.
type ItemFilter struct {
	opts Options
}

// 🏭 NewItemFilter creates the item stage
func NewItemFilter(opts Options) *ItemFilter {
	return &ItemFilter{opts: opts}
}

// 🏃 Execute runs the item stage
func (f *ItemFilter) Execute(ctx context.Context) (*ItemStats, error) {
	f.opts.reporter().Stagef("Filtering timeline items, range %s", f.opts.Range)

	var stats *ItemStats
	var err error
	if f.opts.Backup.Layout == backup.LayoutV2 {
		stats, err = f.executeV2(ctx)
	} else {
		stats, err = f.executeV1(ctx)
	}
	if err != nil {
		return nil, err
	}

	f.opts.reporter().Infof("Kept %d timeline items across %d groups, %d unique place ids",
		stats.Items, stats.Groups, stats.Places.Len())
	return stats, nil
}

// 🚶 executeV1 walks the per-bucket directories of loose item files
func (f *ItemFilter) executeV1(ctx context.Context) (*ItemStats, error) {
	itemsDir := f.opts.Backup.ItemsDir()
	entries, err := os.ReadDir(itemsDir)
	if err != nil {
		return nil, errors.Errorf("reading item storage: %w", err)
	}

	stats := &ItemStats{Places: record.NewPlaceSet()}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		bucket := entry.Name()

		files, err := os.ReadDir(filepath.Join(itemsDir, bucket))
		if err != nil {
			f.opts.reporter().Warnf("Cannot read item bucket %s: %v", bucket, err)
			continue
		}

		bucketItems := 0
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
				continue
			}
			res := f.processV1File(ctx, bucket, file.Name(), stats)
			f.opts.emit(ctx, res)
			bucketItems += res.Records
		}

		if bucketItems > 0 {
			zerolog.Ctx(ctx).Debug().Str("bucket", bucket).Int("items", bucketItems).Msg("bucket filtered")
			stats.Groups++
		}
	}
	return stats, nil
}

// 📄 processV1File decides a single loose item file
func (f *ItemFilter) processV1File(ctx context.Context, bucket, name string, stats *ItemStats) FileResult {
	relPath := path.Join(f.opts.Backup.ItemDirName(), bucket, name)
	srcPath := filepath.Join(f.opts.Backup.ItemsDir(), bucket, name)

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

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "read failed", Err: err}
	}

	var item record.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "corrupted JSON", Err: err}
	}

	startStr, endStr := item.Span()
	start, startOK := daterange.Parse(startStr)
	end, endOK := daterange.Parse(endStr)
	if !startOK || !endOK {
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "missing timestamps"}
	}
	if !f.opts.Range.Overlaps(start, end) {
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "outside range"}
	}

	if err := f.opts.Output.CopyFile(ctx, srcPath, relPath); err != nil {
		return FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "copy failed", Err: err}
	}

	// only visits carry a meaningful place reference in v1
	if item.IsVisit {
		if id, ok := item.PlaceRef(); ok {
			stats.Places.Add(id)
		}
	}

	stats.Items++
	return FileResult{Path: relPath, Outcome: OutcomeCopied, Records: 1}
}

// 📆 executeV2 visits exactly the month files spanning the range
func (f *ItemFilter) executeV2(ctx context.Context) (*ItemStats, error) {
	stats := &ItemStats{Places: record.NewPlaceSet()}

	for _, monthKey := range f.opts.Range.MonthKeys() {
		res := f.processV2Month(ctx, monthKey, stats)
		f.opts.emit(ctx, res)
		if res.Records > 0 {
			stats.Groups++
		}
	}
	return stats, nil
}

// 📄 processV2Month filters one calendar-month array file
func (f *ItemFilter) processV2Month(ctx context.Context, monthKey string, stats *ItemStats) FileResult {
	name := monthKey + ".json"
	relPath := path.Join(f.opts.Backup.ItemDirName(), name)
	srcPath := filepath.Join(f.opts.Backup.ItemsDir(), name)

	if f.opts.shouldSkip(ctx, relPath) {
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "excluded by pattern"}
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		// months with no recorded data simply have no file
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "no month file"}
	}
	if info.Size() == 0 {
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "empty file"}
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "read failed", Err: err}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		f.opts.reporter().Warnf("Month file %s is not a JSON array, treating as empty", name)
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "not a JSON array"}
	}

	kept := make([]json.RawMessage, 0, len(raws))
	for _, raw := range raws {
		var item record.Item
		if err := json.Unmarshal(raw, &item); err != nil {
			zerolog.Ctx(ctx).Debug().Str("file", name).Err(err).Msg("skipping undecodable item")
			continue
		}

		startStr, endStr := item.Span()
		start, startOK := daterange.Parse(startStr)
		end, endOK := daterange.Parse(endStr)
		if !startOK || !endOK || !f.opts.Range.Overlaps(start, end) {
			continue
		}

		kept = append(kept, raw)
		if id, ok := item.PlaceRef(); ok {
			stats.Places.Add(id)
		}
	}

	if len(kept) == 0 {
		return FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "no items in range"}
	}

	if err := f.opts.Output.WriteJSON(ctx, relPath, kept); err != nil {
		return FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "write failed", Err: err}
	}

	stats.Items += len(kept)
	return FileResult{Path: relPath, Outcome: OutcomeWritten, Records: len(kept)}
}
