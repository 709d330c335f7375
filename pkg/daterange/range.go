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

package daterange

import (
	"fmt"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ❌ ErrInvalidRange is returned when a range is malformed or inverted
var ErrInvalidRange = errors.New("invalid date range")

// 📅 Range is an inclusive pair of instants, Start ≤ End
type Range struct {
	Start time.Time
	End   time.Time
}

// 🏭 New creates a validated range
func New(start, end time.Time) (Range, error) {
	if start.After(end) {
		return Range{}, errors.Errorf("%w: start %s is after end %s",
			ErrInvalidRange, start.Format(time.DateTime), end.Format(time.DateTime))
	}
	return Range{Start: start, End: end}, nil
}

// 🏭 ParseRange creates a range from two timestamp strings
func ParseRange(start, end string) (Range, error) {
	startAt, ok := Parse(start)
	if !ok {
		return Range{}, errors.Errorf("%w: cannot parse start %q (use YYYY-MM-DD HH:MM:SS)", ErrInvalidRange, start)
	}
	endAt, ok := Parse(end)
	if !ok {
		return Range{}, errors.Errorf("%w: cannot parse end %q (use YYYY-MM-DD HH:MM:SS)", ErrInvalidRange, end)
	}
	return New(startAt, endAt)
}

// 🔍 Overlaps reports whether a span intersects the range (inclusive).
// Used for timeline items, which cover an interval of time.
func (r Range) Overlaps(start, end time.Time) bool {
	return !start.After(r.End) && !end.Before(r.Start)
}

// 🔍 Contains reports whether a single instant falls inside the range
// (inclusive on both ends). Used for locomotion samples, which are
// point measurements rather than spans.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// 📆 MonthKeys returns the inclusive "YYYY-MM" sequence from the
// range's start month through its end month, in order.
func (r Range) MonthKeys() []string {
	var keys []string
	cursor := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(r.End.Year(), r.End.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(last) {
		keys = append(keys, cursor.Format("2006-01"))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return keys
}

// 📝 String returns a human-readable form of the range
func (r Range) String() string {
	return fmt.Sprintf("%s .. %s", r.Start.Format(time.DateTime), r.End.Format(time.DateTime))
}
