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

// TileDivision describes the tiles of an image as a matrix of rectangles.
// The element at [0][0] is the top left tile, div[y] is the row y and
// div[y][x] the tile in column x of that row. All rows have the same length.
type TileDivision [][]image.Rectangle

// Get returns the rectangle in column x and row y.
func (div TileDivision) Get(x, y int) image.Rectangle {
	return div[y][x]
}

// Size returns the total number of tiles.
func (div TileDivision) Size() int {
	res := 0
	for _, row := range div {
		res += len(row)
	}
	return res
}

// TileSize returns the width and height of a single tile if an image of size
// width x height is divided into numX x numY tiles. It is the integer
// division of the sizes, if that is 0 (more tiles than pixels) the size is 1.
func TileSize(width, height, numX, numY int) (int, int) {
	tileWidth, tileHeight := 1, 1
	if numX > 0 {
		tileWidth = width / numX
	}
	if numY > 0 {
		tileHeight = height / numY
	}
	// this should take care of images that are too small, if such small images
	// are used the results will be bad I guess, this is just a way to ensure
	// that some part of the image is used
	return IntMax(tileWidth, 1), IntMax(tileHeight, 1)
}

// FixedNumDivider divides an image into a fixed number of tiles in each
// direction. All tiles have the same size, given by TileSize.
//
// If the image dimensions are not a multiple of the tile numbers the
// remaining pixels on the right and the bottom are not part of any tile,
// the mosaic is then smaller than the image.
type FixedNumDivider struct {
	NumX, NumY int
}

// NewFixedNumDivider returns a new divider with numX tiles in each row and
// numY rows.
func NewFixedNumDivider(numX, numY int) *FixedNumDivider {
	return &FixedNumDivider{NumX: numX, NumY: numY}
}

// Validate returns ErrInvalidDimensions if one of the tile numbers is < 1.
func (divider *FixedNumDivider) Validate() error {
	if divider.NumX < 1 || divider.NumY < 1 {
		return fmt.Errorf("%w: number of tiles must be positive, got %dx%d",
			ErrInvalidDimensions, divider.NumX, divider.NumY)
	}
	return nil
}

// Divide returns the division of bounds into NumX x NumY tiles, the rectangles
// are ordered from left to right and top to bottom.
//
// If there are more tiles than pixels in some direction the tiles have size 1
// in that direction and the tiles beyond the image reuse the last row / column
// of pixels, so each tile always lies within bounds.
func (divider *FixedNumDivider) Divide(bounds image.Rectangle) (TileDivision, error) {
	if validateErr := divider.Validate(); validateErr != nil {
		return nil, validateErr
	}
	// no division possible if empty
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: can't divide bounds %v", ErrEmptyBuffer, bounds)
	}
	imgWidth, imgHeight := bounds.Dx(), bounds.Dy()
	tileWidth, tileHeight := TileSize(imgWidth, imgHeight, divider.NumX, divider.NumY)
	res := make(TileDivision, divider.NumY)
	for i := 0; i < divider.NumY; i++ {
		res[i] = make([]image.Rectangle, divider.NumX)
		y0 := bounds.Min.Y + IntMin(i*tileHeight, imgHeight-tileHeight)
		for j := 0; j < divider.NumX; j++ {
			x0 := bounds.Min.X + IntMin(j*tileWidth, imgWidth-tileWidth)
			res[i][j] = image.Rect(x0, y0, x0+tileWidth, y0+tileHeight)
		}
	}
	return res, nil
}

// Tile is one cell of the divided reference image.
//
// Buffer holds the pixels of the tile until the representative color was
// computed, SampleTiles drops it afterwards.
type Tile struct {
	Buffer       *PixelBuffer
	Color        RGB
	GridX, GridY int
}

// forEachTile calls onTile concurrently for each tile in dist, using
// numRoutines go routines. The first error returned by onTile is returned after
// all tiles have been processed.
// progress (may be nil) is called after each processed tile.
func forEachTile(dist TileDivision, numRoutines int, progress ProgressFunc,
	onTile func(i, j int) error) error {
	if numRoutines <= 0 {
		numRoutines = 1
	}
	// struct that we use for the channel
	type job struct {
		i, j int
	}

	jobs := make(chan job, BufferSize)
	errorChan := make(chan error, BufferSize)

	for w := 0; w < numRoutines; w++ {
		go func() {
			for next := range jobs {
				errorChan <- onTile(next.i, next.j)
			}
		}()
	}

	go func() {
		for i, row := range dist {
			for j := range row {
				jobs <- job{i, j}
			}
		}
		close(jobs)
	}()

	// any error that occurs sets this variable (first error)
	var err error
	numTiles := dist.Size()
	for done := 1; done <= numTiles; done++ {
		nextErr := <-errorChan
		if nextErr != nil && err == nil {
			err = nextErr
		}
		callProgress(progress, done)
	}
	return err
}

// DivideBuffer creates the tiles of ref given the distribution. Each tile
// gets a copy of the pixels in its rectangle, the colors are not computed yet.
// All rectangles must be inside ref, otherwise ErrOutOfBounds is returned.
func DivideBuffer(ref *PixelBuffer, dist TileDivision, numRoutines int) ([][]Tile, error) {
	res := make([][]Tile, len(dist))
	for i, row := range dist {
		res[i] = make([]Tile, len(row))
	}
	err := forEachTile(dist, numRoutines, nil, func(i, j int) error {
		sub, subErr := ref.SubBufferRect(dist[i][j])
		if subErr != nil {
			return fmt.Errorf("Creation of tile (%d, %d) failed: %w", j, i, subErr)
		}
		res[i][j] = Tile{Buffer: sub, GridX: j, GridY: i}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Decompose divides ref into xCount x yCount tiles. It returns the tiles
// row by row, that is tiles[y][x].
// If there are more tiles than pixels in some direction the tiles beyond the
// image overlap the last row / column of tiles, see FixedNumDivider.Divide.
// ErrInvalidDimensions is returned if xCount or yCount is < 1.
func Decompose(ref *PixelBuffer, xCount, yCount int) ([][]Tile, error) {
	dist, distErr := NewFixedNumDivider(xCount, yCount).Divide(ref.Bounds())
	if distErr != nil {
		return nil, distErr
	}
	return DivideBuffer(ref, dist, 1)
}

// SampleTiles computes the representative color of each tile concurrently.
// After the color of a tile has been computed its buffer is set to nil.
func SampleTiles(tiles [][]Tile, tolerance float64, numRoutines int, progress ProgressFunc) error {
	if tolErr := ValidateTolerance(tolerance); tolErr != nil {
		return tolErr
	}
	// we only need the shape of the grid
	shape := make(TileDivision, len(tiles))
	for i, row := range tiles {
		shape[i] = make([]image.Rectangle, len(row))
	}
	return forEachTile(shape, numRoutines, progress, func(i, j int) error {
		tile := &tiles[i][j]
		c, colorErr := RepresentativeColor(tile.Buffer, tolerance)
		if colorErr != nil {
			return fmt.Errorf("Can't compute color of tile (%d, %d): %w", j, i, colorErr)
		}
		tile.Color = c
		tile.Buffer = nil
		return nil
	})
}
