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
	"errors"
	"image"
	"testing"
)

func TestTileSize(t *testing.T) {
	tests := []struct {
		width, height, numX, numY int
		tileWidth, tileHeight     int
	}{
		{100, 100, 2, 2, 50, 50},
		{10, 7, 3, 2, 3, 3},
		{2, 2, 5, 5, 1, 1},
		{1000, 10, 1, 20, 1000, 1},
	}
	for _, tc := range tests {
		tw, th := TileSize(tc.width, tc.height, tc.numX, tc.numY)
		if tw != tc.tileWidth || th != tc.tileHeight {
			t.Errorf("TileSize(%d, %d, %d, %d): expected %dx%d, got %dx%d",
				tc.width, tc.height, tc.numX, tc.numY, tc.tileWidth, tc.tileHeight, tw, th)
		}
	}
}

func TestFixedNumDivider(t *testing.T) {
	tests := []struct {
		name       string
		bounds     image.Rectangle
		numX, numY int
	}{
		{"even", image.Rect(0, 0, 100, 100), 2, 2},
		{"remainder", image.Rect(0, 0, 10, 7), 3, 2},
		{"offset bounds", image.Rect(5, 5, 25, 15), 4, 5},
		{"more tiles than pixels", image.Rect(0, 0, 2, 3), 5, 4},
		{"single tile", image.Rect(0, 0, 13, 17), 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist, err := NewFixedNumDivider(tc.numX, tc.numY).Divide(tc.bounds)
			if err != nil {
				t.Fatal(err)
			}
			if dist.Size() != tc.numX*tc.numY {
				t.Fatalf("expected %d tiles, got %d", tc.numX*tc.numY, dist.Size())
			}
			tw, th := TileSize(tc.bounds.Dx(), tc.bounds.Dy(), tc.numX, tc.numY)
			for y := 0; y < tc.numY; y++ {
				if len(dist[y]) != tc.numX {
					t.Fatalf("row %d has %d tiles, expected %d", y, len(dist[y]), tc.numX)
				}
				for x := 0; x < tc.numX; x++ {
					r := dist.Get(x, y)
					if r.Dx() != tw || r.Dy() != th {
						t.Errorf("tile (%d, %d) has size %dx%d, expected %dx%d", x, y, r.Dx(), r.Dy(), tw, th)
					}
					if !r.In(tc.bounds) {
						t.Errorf("tile (%d, %d) = %v not inside %v", x, y, r, tc.bounds)
					}
				}
			}
		})
	}
}

func TestFixedNumDividerRowMajor(t *testing.T) {
	dist, err := NewFixedNumDivider(3, 2).Divide(image.Rect(0, 0, 10, 7))
	if err != nil {
		t.Fatal(err)
	}
	expected := TileDivision{
		{image.Rect(0, 0, 3, 3), image.Rect(3, 0, 6, 3), image.Rect(6, 0, 9, 3)},
		{image.Rect(0, 3, 3, 6), image.Rect(3, 3, 6, 6), image.Rect(6, 3, 9, 6)},
	}
	for y, row := range expected {
		for x, r := range row {
			if got := dist[y][x]; got != r {
				t.Errorf("tile (%d, %d): expected %v, got %v", x, y, r, got)
			}
		}
	}
}

func TestDivideErrors(t *testing.T) {
	for _, counts := range [][2]int{{0, 1}, {1, 0}, {-1, 2}, {0, 0}} {
		if _, err := NewFixedNumDivider(counts[0], counts[1]).Divide(image.Rect(0, 0, 10, 10)); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("counts %v: expected ErrInvalidDimensions, got %v", counts, err)
		}
	}
	if _, err := NewFixedNumDivider(2, 2).Divide(image.Rect(0, 0, 0, 0)); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("expected ErrEmptyBuffer, got %v", err)
	}
}

func TestDecompose(t *testing.T) {
	ref := gradientBuffer(t, 4, 4)
	tiles, err := Decompose(ref, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(tiles) != 2 || len(tiles[0]) != 2 || len(tiles[1]) != 2 {
		t.Fatalf("expected 2x2 tiles")
	}
	for y, row := range tiles {
		for x, tile := range row {
			if tile.GridX != x || tile.GridY != y {
				t.Errorf("tile at (%d, %d) has position (%d, %d)", x, y, tile.GridX, tile.GridY)
			}
			if tile.Buffer.Width() != 2 || tile.Buffer.Height() != 2 {
				t.Errorf("tile (%d, %d) has size %dx%d", x, y, tile.Buffer.Width(), tile.Buffer.Height())
			}
			first, _ := tile.Buffer.RGBAt(0, 0)
			expected, _ := ref.RGBAt(2*x, 2*y)
			if first != expected {
				t.Errorf("tile (%d, %d) starts with %v, expected %v", x, y, first, expected)
			}
		}
	}
	// more tiles than pixels: the last tile overlaps its neighbour
	narrow := gradientBuffer(t, 2, 1)
	overlapping, err := Decompose(narrow, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(overlapping) != 1 || len(overlapping[0]) != 3 {
		t.Fatalf("expected 3x1 tiles")
	}
	for x, expected := range []int{0, 1, 1} {
		c, _ := overlapping[0][x].Buffer.RGBAt(0, 0)
		if int(c.R) != expected {
			t.Errorf("tile %d starts at column %d, expected %d", x, c.R, expected)
		}
	}
	for _, counts := range [][2]int{{0, 2}, {2, -3}} {
		if _, err := Decompose(ref, counts[0], counts[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("counts %v: expected ErrInvalidDimensions, got %v", counts, err)
		}
	}
}

func TestSampleTiles(t *testing.T) {
	pix := make([]RGB, 0, 16)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			switch {
			case x < 2 && y < 2:
				pix = append(pix, red)
			case y < 2:
				pix = append(pix, green)
			case x < 2:
				pix = append(pix, blue)
			default:
				pix = append(pix, white)
			}
		}
	}
	ref, err := NewPixelBuffer(4, 4, pix)
	if err != nil {
		t.Fatal(err)
	}
	tiles, err := Decompose(ref, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	calls := 0
	if err := SampleTiles(tiles, 1.0, 3, func(num int) { calls++ }); err != nil {
		t.Fatal(err)
	}
	if calls != 4 {
		t.Errorf("expected 4 progress calls, got %d", calls)
	}
	expected := [][]RGB{{red, green}, {blue, white}}
	for y, row := range tiles {
		for x, tile := range row {
			if tile.Color != expected[y][x] {
				t.Errorf("tile (%d, %d): expected %v, got %v", x, y, expected[y][x], tile.Color)
			}
			if tile.Buffer != nil {
				t.Errorf("tile (%d, %d) still holds its buffer", x, y)
			}
		}
	}
}
