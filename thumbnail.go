// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package colormosaic

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Thumbnail is a candidate image that can replace a tile of the reference
// image.
//
// Color is only valid after Prepare: it is always computed from the resized
// buffer.
type Thumbnail struct {
	// Source describes where the thumbnail came from (usually a path), it is
	// only used in log messages and may be empty.
	Source string
	Buffer *PixelBuffer
	Color  RGB
}

// LoadThumbnail creates a thumbnail from an already decoded image.
func LoadThumbnail(img image.Image, source string) (*Thumbnail, error) {
	buf, bufErr := BufferFromImage(img)
	if bufErr != nil {
		return nil, fmt.Errorf("Can't load thumbnail %s: %w", source, bufErr)
	}
	return &Thumbnail{Source: source, Buffer: buf}, nil
}

// Prepare returns a new thumbnail with the buffer resized to width x height
// and the representative color computed from the resized buffer.
// A nil thumbnail or a thumbnail without pixels results in ErrEmptyBuffer.
func (t *Thumbnail) Prepare(resizer ImageResizer, width, height int, tolerance float64) (Thumbnail, error) {
	if t == nil {
		return Thumbnail{}, fmt.Errorf("%w: nil thumbnail", ErrEmptyBuffer)
	}
	if t.Buffer == nil || t.Buffer.Len() == 0 {
		return Thumbnail{}, fmt.Errorf("%w: thumbnail %s", ErrEmptyBuffer, t.Source)
	}
	scaled, resizeErr := resizer.Resize(t.Buffer, width, height)
	if resizeErr != nil {
		return Thumbnail{}, fmt.Errorf("Can't resize thumbnail %s: %w", t.Source, resizeErr)
	}
	c, colorErr := RepresentativeColor(scaled, tolerance)
	if colorErr != nil {
		return Thumbnail{}, fmt.Errorf("Can't compute color of thumbnail %s: %w", t.Source, colorErr)
	}
	return Thumbnail{Source: t.Source, Buffer: scaled, Color: c}, nil
}

// PrepareThumbnails calls Prepare for all thumbnails, running at most
// numRoutines preparations concurrently. The result has the same order as
// thumbs. If one of the preparations fails the first error is returned.
//
// progress (may be nil) is called with the number of finished thumbnails.
func PrepareThumbnails(thumbs []*Thumbnail, resizer ImageResizer, width, height int,
	tolerance float64, numRoutines int, progress ProgressFunc) ([]Thumbnail, error) {
	if numRoutines <= 0 {
		numRoutines = 1
	}
	res := make([]Thumbnail, len(thumbs))
	var g errgroup.Group
	g.SetLimit(numRoutines)

	// progress must be called from one go routine at a time
	var m sync.Mutex
	done := 0

	for i, thumb := range thumbs {
		i, thumb := i, thumb
		g.Go(func() error {
			prepared, prepareErr := thumb.Prepare(resizer, width, height, tolerance)
			if prepareErr != nil {
				return prepareErr
			}
			res[i] = prepared
			m.Lock()
			done++
			callProgress(progress, done)
			m.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
