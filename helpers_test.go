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
	"testing"
)

var (
	red   = RGB{R: 255}
	green = RGB{G: 255}
	blue  = RGB{B: 255}
	black = RGB{}
	white = RGB{R: 255, G: 255, B: 255}
)

func solidBuffer(t *testing.T, width, height int, c RGB) *PixelBuffer {
	t.Helper()
	buf, err := NewUniformBuffer(width, height, c)
	if err != nil {
		t.Fatalf("can't create %dx%d buffer: %v", width, height, err)
	}
	return buf
}

// gradientBuffer returns a buffer where the pixel at (x, y) has the color
// (x, y, x + y), so each position can be identified by its color.
func gradientBuffer(t *testing.T, width, height int) *PixelBuffer {
	t.Helper()
	pix := make([]RGB, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pix = append(pix, RGB{R: uint8(x), G: uint8(y), B: uint8(x + y)})
		}
	}
	buf, err := NewPixelBuffer(width, height, pix)
	if err != nil {
		t.Fatalf("can't create %dx%d buffer: %v", width, height, err)
	}
	return buf
}

func pixelsOf(buf *PixelBuffer) []RGB {
	res := make([]RGB, 0, buf.Len())
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c, _ := buf.RGBAt(x, y)
			res = append(res, c)
		}
	}
	return res
}

func assertUniform(t *testing.T, buf *PixelBuffer, c RGB) {
	t.Helper()
	for i, p := range pixelsOf(buf) {
		if p != c {
			t.Fatalf("pixel (%d, %d) is %v, expected %v", i%buf.Width(), i/buf.Width(), p, c)
		}
	}
}
