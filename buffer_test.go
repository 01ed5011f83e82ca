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
	"image/color"
	"testing"
)

func TestNewPixelBuffer(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		numPix        int
		err           error
	}{
		{"valid", 3, 2, 6, nil},
		{"single pixel", 1, 1, 1, nil},
		{"zero width", 0, 2, 0, ErrInvalidDimensions},
		{"negative height", 2, -1, 0, ErrInvalidDimensions},
		{"too few pixels", 3, 2, 5, ErrInvalidDimensions},
		{"too many pixels", 3, 2, 7, ErrInvalidDimensions},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := NewPixelBuffer(tc.width, tc.height, make([]RGB, tc.numPix))
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected error %v, got %v", tc.err, err)
			}
			if tc.err == nil && (buf.Width() != tc.width || buf.Height() != tc.height) {
				t.Errorf("expected %dx%d buffer, got %dx%d", tc.width, tc.height, buf.Width(), buf.Height())
			}
		})
	}
}

func TestNewPixelBufferCopies(t *testing.T) {
	pix := []RGB{red, green}
	buf, err := NewPixelBuffer(2, 1, pix)
	if err != nil {
		t.Fatal(err)
	}
	pix[0] = blue
	if c, _ := buf.RGBAt(0, 0); c != red {
		t.Errorf("buffer changed after modifying the input, got %v", c)
	}
}

func TestRGBAt(t *testing.T) {
	buf := gradientBuffer(t, 4, 3)
	c, err := buf.RGBAt(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if expected := (RGB{R: 3, G: 2, B: 5}); c != expected {
		t.Errorf("expected %v, got %v", expected, c)
	}
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {4, 3}} {
		if _, err := buf.RGBAt(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("expected ErrOutOfBounds for %v, got %v", p, err)
		}
	}
	// At is more forgiving
	if c := buf.At(10, 10); c != (RGB{}) {
		t.Errorf("expected zero color outside of the buffer, got %v", c)
	}
}

func TestSubBuffer(t *testing.T) {
	buf := gradientBuffer(t, 6, 5)
	sub, err := buf.SubBuffer(2, 1, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Width() != 3 || sub.Height() != 2 {
		t.Fatalf("expected 3x2 buffer, got %dx%d", sub.Width(), sub.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got, _ := sub.RGBAt(x, y)
			expected, _ := buf.RGBAt(x+2, y+1)
			if got != expected {
				t.Errorf("pixel (%d, %d): expected %v, got %v", x, y, expected, got)
			}
		}
	}

	t.Run("whole buffer", func(t *testing.T) {
		whole, err := buf.SubBufferRect(buf.Bounds())
		if err != nil {
			t.Fatal(err)
		}
		if whole.Len() != buf.Len() {
			t.Errorf("expected %d pixels, got %d", buf.Len(), whole.Len())
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			x, y, w, h int
			err        error
		}{
			{5, 0, 2, 1, ErrOutOfBounds},
			{0, 4, 1, 2, ErrOutOfBounds},
			{-1, 0, 1, 1, ErrOutOfBounds},
			{0, 0, 7, 5, ErrOutOfBounds},
			{0, 0, 0, 1, ErrInvalidDimensions},
			{0, 0, 1, -2, ErrInvalidDimensions},
		}
		for _, tc := range tests {
			if _, err := buf.SubBuffer(tc.x, tc.y, tc.w, tc.h); !errors.Is(err, tc.err) {
				t.Errorf("SubBuffer(%d, %d, %d, %d): expected %v, got %v", tc.x, tc.y, tc.w, tc.h, tc.err, err)
			}
		}
	})
}

func TestBufferFromImage(t *testing.T) {
	t.Run("rgba sub image", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.Set(x, y, color.RGBA{R: uint8(10 * x), G: uint8(10 * y), B: 7, A: 255})
			}
		}
		sub := img.SubImage(image.Rect(1, 2, 3, 4))
		buf, err := BufferFromImage(sub)
		if err != nil {
			t.Fatal(err)
		}
		if buf.Width() != 2 || buf.Height() != 2 {
			t.Fatalf("expected 2x2 buffer, got %dx%d", buf.Width(), buf.Height())
		}
		if c, _ := buf.RGBAt(0, 0); c != (RGB{R: 10, G: 20, B: 7}) {
			t.Errorf("wrong color at origin: %v", c)
		}
		if c, _ := buf.RGBAt(1, 1); c != (RGB{R: 20, G: 30, B: 7}) {
			t.Errorf("wrong color at (1, 1): %v", c)
		}
	})

	t.Run("gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 2))
		for i := range img.Pix {
			img.Pix[i] = 100
		}
		buf, err := BufferFromImage(img)
		if err != nil {
			t.Fatal(err)
		}
		assertUniform(t, buf, RGB{R: 100, G: 100, B: 100})
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := BufferFromImage(image.NewRGBA(image.Rect(0, 0, 0, 3))); !errors.Is(err, ErrEmptyBuffer) {
			t.Errorf("expected ErrEmptyBuffer, got %v", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		buf := gradientBuffer(t, 5, 3)
		back, err := BufferFromImage(buf.ToRGBA())
		if err != nil {
			t.Fatal(err)
		}
		expected, got := pixelsOf(buf), pixelsOf(back)
		for i := range expected {
			if expected[i] != got[i] {
				t.Fatalf("pixel %d: expected %v, got %v", i, expected[i], got[i])
			}
		}
	})
}
