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
	"testing"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

func TestResizeExactSize(t *testing.T) {
	resizers := map[string]ImageResizer{
		"nfnt mitchell":   NewNfntResizer(resize.MitchellNetravali),
		"nfnt lanczos3":   NewNfntResizer(resize.Lanczos3),
		"draw catmullrom": NewDrawResizer(draw.CatmullRom),
		"draw bilinear":   NewDrawResizer(draw.BiLinear),
	}
	src := gradientBuffer(t, 40, 30)
	sizes := []struct{ width, height int }{
		{10, 10},
		{1, 1},
		{80, 45},
		{40, 7},
		{3, 60},
	}
	for name, resizer := range resizers {
		t.Run(name, func(t *testing.T) {
			for _, size := range sizes {
				res, err := resizer.Resize(src, size.width, size.height)
				if err != nil {
					t.Fatalf("resize to %dx%d failed: %v", size.width, size.height, err)
				}
				if res.Width() != size.width || res.Height() != size.height {
					t.Errorf("expected %dx%d, got %dx%d", size.width, size.height, res.Width(), res.Height())
				}
			}
		})
	}
}

func TestResizeUniform(t *testing.T) {
	c := RGB{R: 40, G: 120, B: 250}
	src := solidBuffer(t, 9, 6, c)
	resizers := []ImageResizer{
		NewNfntResizer(resize.NearestNeighbor),
		NewDrawResizer(draw.NearestNeighbor),
	}
	for _, resizer := range resizers {
		down, err := resizer.Resize(src, 3, 2)
		if err != nil {
			t.Fatal(err)
		}
		assertUniform(t, down, c)
		up, err := resizer.Resize(src, 20, 13)
		if err != nil {
			t.Fatal(err)
		}
		assertUniform(t, up, c)
	}
}

func TestResizeSameSize(t *testing.T) {
	src := gradientBuffer(t, 5, 5)
	for _, resizer := range []ImageResizer{DefaultResizer, NewDrawResizer(draw.CatmullRom)} {
		res, err := resizer.Resize(src, 5, 5)
		if err != nil {
			t.Fatal(err)
		}
		if res != src {
			t.Errorf("expected the same buffer if the size doesn't change")
		}
	}
}

func TestResizeInvalidDimensions(t *testing.T) {
	src := gradientBuffer(t, 5, 5)
	for _, resizer := range []ImageResizer{DefaultResizer, NewDrawResizer(draw.CatmullRom)} {
		for _, size := range [][2]int{{0, 5}, {5, 0}, {-1, -1}} {
			if _, err := resizer.Resize(src, size[0], size[1]); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("size %v: expected ErrInvalidDimensions, got %v", size, err)
			}
		}
	}
}

func TestResizeEmptyBuffer(t *testing.T) {
	resizers := map[string]ImageResizer{
		"nfnt": DefaultResizer,
		"draw": NewDrawResizer(draw.BiLinear),
	}
	for name, resizer := range resizers {
		for _, buf := range []*PixelBuffer{nil, {}} {
			if _, err := resizer.Resize(buf, 2, 2); !errors.Is(err, ErrEmptyBuffer) {
				t.Errorf("%s: expected ErrEmptyBuffer, got %v", name, err)
			}
		}
	}
}

func TestResizerFromString(t *testing.T) {
	for _, name := range ResizerNames() {
		if _, err := ResizerFromString(name); err != nil {
			t.Errorf("name %s: %v", name, err)
		}
	}
	if r, err := ResizerFromString("Lanczos3"); err != nil {
		t.Error(err)
	} else if nfnt, ok := r.(NfntResizer); !ok || InterPString(nfnt.InterP) != "lanczos3" {
		t.Errorf("expected lanczos3 nfnt resizer, got %#v", r)
	}
	if r, err := ResizerFromString("catmullrom"); err != nil {
		t.Error(err)
	} else if _, ok := r.(DrawResizer); !ok {
		t.Errorf("expected draw resizer, got %#v", r)
	}
	for quality, expected := range map[string]string{"0": "nearest", "2": "bicubic", " 5 ": "lanczos3", "9": "lanczos3"} {
		if r, err := ResizerFromString(quality); err != nil {
			t.Errorf("quality %q: %v", quality, err)
		} else if nfnt, ok := r.(NfntResizer); !ok || InterPString(nfnt.InterP) != expected {
			t.Errorf("quality %q: expected %s nfnt resizer, got %#v", quality, expected, r)
		}
	}
	if _, err := ResizerFromString("-1"); err == nil {
		t.Error("expected error for negative quality")
	}
	if _, err := ResizerFromString("sinc"); err == nil {
		t.Error("expected error for unknown resizer")
	}
	if _, err := InterPFromString("sinc"); err == nil {
		t.Error("expected error for unknown interpolation function")
	}
}

func TestGetInterP(t *testing.T) {
	tests := []struct {
		quality  uint
		expected string
	}{
		{0, "nearest"},
		{1, "bilinear"},
		{3, "mitchell"},
		{5, "lanczos3"},
		{42, "lanczos3"},
	}
	for _, tc := range tests {
		if got := InterPString(GetInterP(tc.quality)); got != tc.expected {
			t.Errorf("quality %d: expected %s, got %s", tc.quality, tc.expected, got)
		}
	}
}
