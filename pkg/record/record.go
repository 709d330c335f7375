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

// Package record defines the typed views of backup records. Only the
// fields the filter needs are declared; full record payloads travel as
// raw JSON so nothing is lost on the way to the output tree.
package record

// 🧭 ItemCore holds the time span and place reference nested under an
// item's "base" object in the v2 layout.
type ItemCore struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	PlaceID   string `json:"placeId,omitempty"`
}

// 📍 VisitInfo is the v2 nested visit object
type VisitInfo struct {
	PlaceID string `json:"placeId,omitempty"`
}

// 🏠 PlaceInfo is an embedded place object carrying its identifier
type PlaceInfo struct {
	PlaceID string `json:"placeId,omitempty"`
}

// 🎯 Item is a timeline item. V1 stores the span and place reference
// at the top level; v2 may nest them under "base", "visit" or "place".
type Item struct {
	StartDate string     `json:"startDate,omitempty"`
	EndDate   string     `json:"endDate,omitempty"`
	IsVisit   bool       `json:"isVisit,omitempty"`
	PlaceID   string     `json:"placeId,omitempty"`
	Base      *ItemCore  `json:"base,omitempty"`
	Visit     *VisitInfo `json:"visit,omitempty"`
	Place     *PlaceInfo `json:"place,omitempty"`
}

// 🕰️ Span returns the item's start and end timestamp strings, reading
// the nested "base" object first and falling back to the top level.
func (it *Item) Span() (start, end string) {
	if it.Base != nil && it.Base.StartDate != "" && it.Base.EndDate != "" {
		return it.Base.StartDate, it.Base.EndDate
	}
	return it.StartDate, it.EndDate
}

// 🔍 PlaceRef returns the item's place identifier, trying each known
// location in priority order: top level, "base", "visit", then an
// embedded "place" object. The first non-empty value wins.
func (it *Item) PlaceRef() (string, bool) {
	attempts := []func() string{
		func() string { return it.PlaceID },
		func() string {
			if it.Base != nil {
				return it.Base.PlaceID
			}
			return ""
		},
		func() string {
			if it.Visit != nil {
				return it.Visit.PlaceID
			}
			return ""
		},
		func() string {
			if it.Place != nil {
				return it.Place.PlaceID
			}
			return ""
		},
	}
	for _, attempt := range attempts {
		if id := attempt(); id != "" {
			return id, true
		}
	}
	return "", false
}

// 🚶 Sample is a locomotion sample; a point measurement with a single
// timestamp. The rest of its payload is opaque to the filter.
type Sample struct {
	Date string `json:"date,omitempty"`
}

// 🏠 Place is a place record keyed by its string identifier
type Place struct {
	PlaceID string `json:"placeId,omitempty"`
}
