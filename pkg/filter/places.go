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

	"github.com/rs/zerolog"
	"github.com/walteh/locofilter/pkg/backup"
	"github.com/walteh/locofilter/pkg/record"
)

// 🎯 PlaceResolver copies the place records referenced by surviving
// items. Missing place files are expected (places get deleted, backups
// drift) and never fail the run.
type PlaceResolver struct {
	opts Options
}

// 🏭 NewPlaceResolver creates the place stage
func NewPlaceResolver(opts Options) *PlaceResolver {
	return &PlaceResolver{opts: opts}
}

// 🏃 Execute resolves the requested identifiers against place storage
func (r *PlaceResolver) Execute(ctx context.Context, places record.PlaceSet) (int, error) {
	placesDir := r.opts.Backup.PlacesDir()
	if _, err := os.Stat(placesDir); err != nil {
		r.opts.reporter().Warnf("Place storage not found in backup, skipping %d place ids", places.Len())
		return 0, nil
	}

	r.opts.reporter().Stagef("Resolving %d place records", places.Len())

	var count int
	if r.opts.Backup.Layout == backup.LayoutV2 {
		count = r.executeV2(ctx, places)
	} else {
		count = r.executeV1(ctx, places)
	}

	r.opts.reporter().Infof("Copied %d place records", count)
	return count, nil
}

// 🚶 executeV1 copies one file per referenced place id
func (r *PlaceResolver) executeV1(ctx context.Context, places record.PlaceSet) int {
	count := 0
	for _, id := range places.IDs() {
		bucket := record.BucketKey(id)
		relPath := path.Join(r.opts.Backup.PlaceDirName(), bucket, id+".json")
		srcPath := filepath.Join(r.opts.Backup.PlacesDir(), bucket, id+".json")

		if _, err := os.Stat(srcPath); err != nil {
			zerolog.Ctx(ctx).Debug().Str("place", id).Msg("place file not found")
			r.opts.emit(ctx, FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "not in source"})
			continue
		}

		if err := r.opts.Output.CopyFile(ctx, srcPath, relPath); err != nil {
			r.opts.emit(ctx, FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "copy failed", Err: err})
			continue
		}

		r.opts.emit(ctx, FileResult{Path: relPath, Outcome: OutcomeCopied, Records: 1})
		count++
	}
	return count
}

// 🗂️ executeV2 filters each referenced first-character bucket file
func (r *PlaceResolver) executeV2(ctx context.Context, places record.PlaceSet) int {
	count := 0
	for _, bucket := range places.Buckets() {
		name := bucket + ".json"
		relPath := path.Join(r.opts.Backup.PlaceDirName(), name)
		srcPath := filepath.Join(r.opts.Backup.PlacesDir(), name)

		data, err := os.ReadFile(srcPath)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("bucket", bucket).Msg("place bucket file not found")
			r.opts.emit(ctx, FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "not in source"})
			continue
		}

		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			r.opts.reporter().Warnf("Place bucket %s is not a JSON array: %v", name, err)
			r.opts.emit(ctx, FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "corrupted JSON", Err: err})
			continue
		}

		kept := make([]json.RawMessage, 0, len(raws))
		for _, raw := range raws {
			var place record.Place
			if err := json.Unmarshal(raw, &place); err != nil {
				continue
			}
			if places.Contains(place.PlaceID) {
				kept = append(kept, raw)
			}
		}

		if len(kept) == 0 {
			r.opts.emit(ctx, FileResult{Path: relPath, Outcome: OutcomeSkipped, Reason: "no referenced places"})
			continue
		}

		if err := r.opts.Output.WriteJSON(ctx, relPath, kept); err != nil {
			r.opts.emit(ctx, FileResult{Path: relPath, Outcome: OutcomeFailed, Reason: "write failed", Err: err})
			continue
		}

		r.opts.emit(ctx, FileResult{Path: relPath, Outcome: OutcomeWritten, Records: len(kept)})
		count += len(kept)
	}
	return count
}
