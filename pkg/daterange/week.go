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
	"strconv"
	"strings"
	"time"
)

// 📆 WeekSpan returns the [Monday 00:00, next Monday 00:00) span of an
// ISO 8601 week. Week 1 is the week containing January 4th.
func WeekSpan(year, week int) (start, end time.Time) {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	// Go weekdays start at Sunday; ISO weeks start at Monday
	offset := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -offset)
	start = week1Monday.AddDate(0, 0, (week-1)*7)
	return start, start.AddDate(0, 0, 7)
}

// 🔍 ParseWeekFileName parses a weekly archive name such as
// "2024-W51.json.gz" (or "2024-W51.json") into its year and week.
func ParseWeekFileName(name string) (year, week int, ok bool) {
	stem := strings.TrimSuffix(name, ".gz")
	stem = strings.TrimSuffix(stem, ".json")

	parts := strings.Split(stem, "-W")
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	week, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return year, week, true
}
