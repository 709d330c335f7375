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

// Package daterange provides timestamp parsing and the inclusive date
// range used to filter backup records.
package daterange

import (
	"strings"
	"time"
)

// 🕰️ layouts accepted after normalization, most specific first
var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// 📝 Parse normalizes an ISO-ish timestamp string into a naive instant.
//
// Backup records carry timestamps in several forms: space or 'T'
// separator, optional trailing 'Z', optional explicit UTC offset.
// Any timezone suffix is stripped, not applied — every timestamp in a
// backup goes through the same lossy normalization, so comparisons
// between them stay consistent. A trailing negative offset is told
// apart from the date's own dashes by counting dashes after the
// space→'T' rewrite (a plain timestamp has exactly two).
//
// Returns false for empty or unparseable input; never errors.
func Parse(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	normalized := strings.ReplaceAll(s, " ", "T")
	switch {
	case strings.Contains(normalized, "Z"):
		normalized = strings.ReplaceAll(normalized, "Z", "")
	case strings.Contains(normalized, "+"):
		normalized = normalized[:strings.Index(normalized, "+")]
	case strings.Count(normalized, "-") > 2:
		// has a negative offset; keep only the date-and-time part
		parts := strings.SplitN(normalized, "-", 4)
		normalized = strings.Join(parts[:3], "-")
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
