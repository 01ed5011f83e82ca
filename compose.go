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
)

// ComposeMosaic draws the assigned thumbnails into a new buffer.
//
// The result has xCount * thumbWidth columns and yCount * thumbHeight rows,
// where yCount is the number of rows in the assignment and xCount the length
// of each row. The thumbnail of the tile at (x, y) is copied to
// (x * thumbWidth, y * thumbHeight), it replaces the pixels in that area
// (there is no blending).
//
// All thumbnails must already have the size thumbWidth x thumbHeight, use
// PrepareThumbnails for that.
func ComposeMosaic(thumbs []Thumbnail, assignment Assignment, thumbWidth, thumbHeight int) (*PixelBuffer, error) {
	if dimErr := checkDimensions(thumbWidth, thumbHeight); dimErr != nil {
		return nil, dimErr
	}
	yCount := len(assignment)
	if yCount == 0 || len(assignment[0]) == 0 {
		return nil, fmt.Errorf("%w: empty assignment", ErrInvalidDimensions)
	}
	xCount := len(assignment[0])
	for i, row := range assignment {
		if len(row) != xCount {
			return nil, fmt.Errorf("%w: row %d has %d tiles, expected %d",
				ErrInvalidDimensions, i, len(row), xCount)
		}
	}
	for i, thumb := range thumbs {
		if thumb.Buffer == nil || thumb.Buffer.Width() != thumbWidth || thumb.Buffer.Height() != thumbHeight {
			return nil, fmt.Errorf("%w: thumbnail %d (%s) is not of size %dx%d",
				ErrInvalidDimensions, i, thumb.Source, thumbWidth, thumbHeight)
		}
	}

	res := newBlankBuffer(xCount*thumbWidth, yCount*thumbHeight)
	for y, row := range assignment {
		for x, idx := range row {
			if idx < 0 || idx >= len(thumbs) {
				return nil, fmt.Errorf("%w: tile (%d, %d) assigned to thumbnail %d, have %d",
					ErrOutOfBounds, x, y, idx, len(thumbs))
			}
			res.drawBuffer(thumbs[idx].Buffer, x*thumbWidth, y*thumbHeight)
		}
	}
	return res, nil
}
