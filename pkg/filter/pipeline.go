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

	"gitlab.com/tozd/go/errors"
)

// 📊 Summary holds the final counts of a run
type Summary struct {
	Items   int
	Samples int
	Places  int
}

// 🎯 Pipeline runs the three stages strictly in order: items, then
// samples, then places. Each stage finishes before the next begins;
// the only state crossing stage boundaries is the place-id set handed
// from the item filter to the place resolver.
type Pipeline struct {
	opts Options
}

// 🏭 NewPipeline creates a pipeline after validating its options
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.Backup == nil {
		return nil, errors.Errorf("backup is required")
	}
	if opts.Output == nil {
		return nil, errors.Errorf("output tree is required")
	}
	return &Pipeline{opts: opts}, nil
}

// 🏃 Run executes the full filter operation
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	itemStats, err := NewItemFilter(p.opts).Execute(ctx)
	if err != nil {
		return nil, errors.Errorf("filtering timeline items: %w", err)
	}

	sampleStats, err := NewSampleFilter(p.opts).Execute(ctx)
	if err != nil {
		return nil, errors.Errorf("filtering locomotion samples: %w", err)
	}

	placeCount, err := NewPlaceResolver(p.opts).Execute(ctx, itemStats.Places)
	if err != nil {
		return nil, errors.Errorf("resolving places: %w", err)
	}

	return &Summary{
		Items:   itemStats.Items,
		Samples: sampleStats.Samples,
		Places:  placeCount,
	}, nil
}
