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

// Package backup models the two on-disk backup layouts: where each
// record kind lives, how a source root is classified, and how the
// mirrored output tree is written.
package backup

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ❌ ErrUnrecognizedFormat is returned when a root matches neither layout
	ErrUnrecognizedFormat = errors.New("unrecognized backup format")

	// ❌ ErrMissingDirectory is returned when a mandatory storage
	// directory for the detected layout is absent
	ErrMissingDirectory = errors.New("missing storage directory")
)

// 🗂️ Layout identifies one of the two supported backup schemes
type Layout int

const (
	LayoutUnknown Layout = iota
	LayoutV1             // one item per file in hash buckets, weekly sample archives
	LayoutV2             // monthly item arrays, bucketed place files
)

// String returns a string representation of Layout
func (l Layout) String() string {
	switch l {
	case LayoutV1:
		return "v1"
	case LayoutV2:
		return "v2"
	default:
		return "unknown"
	}
}

// 📁 Directory names per layout. Both layouts share the weekly sample
// scheme and the place bucketing key; only names and batching differ.
const (
	v1ItemDir   = "TimelineItem"
	v1SampleDir = "LocomotionSample"
	v2ItemDir   = "Item"
	v2SampleDir = "Sample"
	placeDir    = "Place"
)

// 📦 Backup is a classified source root
type Backup struct {
	Root   string
	Layout Layout
}

// 🔍 Detect classifies a backup root by its marker directories.
// If both layouts' markers are present the newer v2 layout wins, with
// a warning. A root with neither is not a backup.
func Detect(ctx context.Context, root string) (*Backup, error) {
	logger := zerolog.Ctx(ctx)

	hasV1 := dirExists(filepath.Join(root, v1ItemDir)) || dirExists(filepath.Join(root, v1SampleDir))
	hasV2 := dirExists(filepath.Join(root, v2ItemDir)) || dirExists(filepath.Join(root, v2SampleDir))

	var layout Layout
	switch {
	case hasV1 && hasV2:
		logger.Warn().Str("root", root).Msg("both v1 and v2 markers present, treating as v2")
		layout = LayoutV2
	case hasV2:
		layout = LayoutV2
	case hasV1:
		layout = LayoutV1
	default:
		return nil, errors.Errorf("%w: %s has neither %s/%s nor %s/%s",
			ErrUnrecognizedFormat, root, v1ItemDir, v1SampleDir, v2ItemDir, v2SampleDir)
	}

	b := &Backup{Root: root, Layout: layout}

	// the item and sample stores are mandatory once a layout is chosen
	if !dirExists(b.ItemsDir()) {
		return nil, errors.Errorf("%w: %s", ErrMissingDirectory, b.ItemsDir())
	}
	if !dirExists(b.SamplesDir()) {
		return nil, errors.Errorf("%w: %s", ErrMissingDirectory, b.SamplesDir())
	}

	logger.Debug().Str("root", root).Stringer("layout", layout).Msg("detected backup layout")
	return b, nil
}

// 📁 ItemsDir returns the item storage path for the layout
func (b *Backup) ItemsDir() string {
	if b.Layout == LayoutV2 {
		return filepath.Join(b.Root, v2ItemDir)
	}
	return filepath.Join(b.Root, v1ItemDir)
}

// 📁 SamplesDir returns the sample storage path for the layout
func (b *Backup) SamplesDir() string {
	if b.Layout == LayoutV2 {
		return filepath.Join(b.Root, v2SampleDir)
	}
	return filepath.Join(b.Root, v1SampleDir)
}

// 📁 PlacesDir returns the place storage path (same name in both layouts)
func (b *Backup) PlacesDir() string {
	return filepath.Join(b.Root, placeDir)
}

// 📁 ItemDirName returns the layout's item directory name
func (b *Backup) ItemDirName() string {
	if b.Layout == LayoutV2 {
		return v2ItemDir
	}
	return v1ItemDir
}

// 📁 SampleDirName returns the layout's sample directory name
func (b *Backup) SampleDirName() string {
	if b.Layout == LayoutV2 {
		return v2SampleDir
	}
	return v1SampleDir
}

// 📁 PlaceDirName returns the place directory name
func (b *Backup) PlaceDirName() string {
	return placeDir
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
