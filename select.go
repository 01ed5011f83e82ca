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
)

// Assignment maps each tile to the index of a thumbnail. It has the same
// shape as the tile grid: assignment[y][x] is the thumbnail for the tile in
// column x of row y. A thumbnail can be used for any number of tiles.
type Assignment [][]int

// Get returns the thumbnail index for the tile at (x, y).
func (a Assignment) Get(x, y int) int {
	return a[y][x]
}

// Counts returns how often each of numThumbs thumbnails is used.
func (a Assignment) Counts(numThumbs int) []int {
	res := make([]int, numThumbs)
	for _, row := range a {
		for _, idx := range row {
			if idx >= 0 && idx < numThumbs {
				res[idx]++
			}
		}
	}
	return res
}

// ImageSelector selects one thumbnail for each tile.
//
// The returned assignment must have the same shape as tiles and each entry
// must be a valid index in thumbs. If thumbs is empty ErrNoCandidates must be
// returned.
//
// NearestColorSelector is the default implementation. A selector based on a
// spatial index (for example a k-d tree over the thumbnail colors) can be
// plugged in here if the linear search ever becomes too slow.
type ImageSelector interface {
	SelectImages(tiles [][]Tile, thumbs []Thumbnail) (Assignment, error)
}

// NearestColorSelector implements ImageSelector and selects the thumbnail whose
// color has the smallest euclidean distance to the color of the tile.
//
// Thumbnails are always compared in the order of the input slice and the
// current best thumbnail is only replaced if another thumbnail is strictly
// closer. Thus if two thumbnails have the same distance the one that comes
// first wins, and the result is always the same for the same input.
//
// The best thumbnail for NumRoutines tiles is computed concurrently, this does
// not change the result.
type NearestColorSelector struct {
	NumRoutines int
	// Progress is called with the number of tiles processed so far, may be
	// nil.
	Progress ProgressFunc
}

// NewNearestColorSelector returns a new selector given the number of go
// routines to run when selecting images.
func NewNearestColorSelector(numRoutines int, progress ProgressFunc) *NearestColorSelector {
	if numRoutines <= 0 {
		numRoutines = 1
	}
	return &NearestColorSelector{NumRoutines: numRoutines, Progress: progress}
}

// Nearest returns the index of the thumbnail closest to c, if multiple
// thumbnails have the same distance the smallest index is returned.
// thumbs must not be empty.
func Nearest(c RGB, thumbs []Thumbnail) int {
	best := 0
	bestDist := DistanceSq(c, thumbs[0].Color)
	for j := 1; j < len(thumbs); j++ {
		// check if better than best so far
		if d := DistanceSq(c, thumbs[j].Color); d < bestDist {
			best = j
			bestDist = d
		}
	}
	return best
}

// SelectImages selects the closest thumbnail for each tile.
func (sel *NearestColorSelector) SelectImages(tiles [][]Tile, thumbs []Thumbnail) (Assignment, error) {
	if len(thumbs) == 0 {
		return nil, ErrNoCandidates
	}
	result := make(Assignment, len(tiles))
	shape := make(TileDivision, len(tiles))
	for i, row := range tiles {
		result[i] = make([]int, len(row))
		shape[i] = make([]image.Rectangle, len(row))
	}
	err := forEachTile(shape, sel.NumRoutines, sel.Progress, func(i, j int) error {
		tile := tiles[i][j]
		if tile.GridX != j || tile.GridY != i {
			return fmt.Errorf("%w: tile at (%d, %d) claims position (%d, %d)",
				ErrOutOfBounds, j, i, tile.GridX, tile.GridY)
		}
		result[i][j] = Nearest(tile.Color, thumbs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
