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

// Package filter implements the three pipeline stages that carve a
// date-range subset out of a backup: the item filter, the sample
// filter and the place resolver.
package filter

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/locofilter/pkg/backup"
	"github.com/walteh/locofilter/pkg/daterange"
	"github.com/walteh/locofilter/pkg/report"
)

// 🔧 Options contains the shared configuration for all stages
type Options struct {
	// Backup is the classified source tree
	Backup *backup.Backup
	// Output is the mirrored destination tree
	Output *backup.OutputTree
	// Range is the inclusive date range to keep
	Range daterange.Range
	// Reporter receives user-facing events; defaults to a no-op
	Reporter report.Reporter
	// SkipPatterns are doublestar globs, matched against paths
	// relative to the backup root, whose files are excluded
	SkipPatterns []string
}

// 📢 reporter returns the configured reporter or a no-op
func (o Options) reporter() report.Reporter {
	if o.Reporter == nil {
		return report.Nop{}
	}
	return o.Reporter
}

// 🔍 shouldSkip checks a backup-relative path against the skip patterns
func (o Options) shouldSkip(ctx context.Context, relPath string) bool {
	for _, pattern := range o.SkipPatterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", relPath).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("path", relPath).Str("pattern", pattern).Msg("file excluded by pattern")
			return true
		}
	}
	return false
}

// 📊 Outcome classifies the processing result of a single file
type Outcome int

const (
	OutcomeCopied  Outcome = iota // copied verbatim to the output tree
	OutcomeWritten                // filtered content re-serialized to the output tree
	OutcomeSkipped                // nothing to keep (out of range, empty, excluded)
	OutcomeFailed                 // unreadable or corrupt; run continues without it
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeWritten:
		return "written"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileResult is the explicit per-file outcome of a stage. Failures
// are values, not control flow: a corrupt file yields a result with
// an error attached and the stage moves on.
type FileResult struct {
	Path    string  // path relative to the source root
	Outcome Outcome // what happened
	Reason  string  // human-readable detail for skips and failures
	Records int     // records kept from this file
	Err     error   // the underlying error for OutcomeFailed
}

// 📢 emit forwards a result to the reporter with the right change type
func (o Options) emit(ctx context.Context, res FileResult) {
	change := report.FileChange{Path: res.Path, Description: res.Reason, Err: res.Err}
	switch res.Outcome {
	case OutcomeCopied:
		change.Type = report.FileCopied
	case OutcomeWritten:
		change.Type = report.FileWritten
	case OutcomeSkipped:
		change.Type = report.FileSkipped
	case OutcomeFailed:
		change.Type = report.FileError
	}
	o.reporter().FileChange(ctx, change)
}
