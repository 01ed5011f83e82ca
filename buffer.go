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
	"image/color"
)

// RGBModel is the color model of a PixelBuffer, it drops the alpha channel.
var RGBModel color.Model = color.ModelFunc(rgbModel)

func rgbModel(c color.Color) color.Color {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	return ConvertRGB(c)
}

// PixelBuffer is a two-dimensional grid of RGB samples. The origin is the top
// left corner and pixels are stored row by row.
//
// A buffer is never modified after it has been returned by one of the
// constructors, operations like SubBuffer or resizing always create a new
// buffer. Because of this a buffer can be shared by multiple go routines.
//
// PixelBuffer implements image.Image with bounds (0, 0) - (width, height), so
// it can be passed to encoders and resize libraries directly.
type PixelBuffer struct {
	width, height int
	pix           []RGB
}

// newBlankBuffer allocates a black buffer, the caller has to make sure that
// the dimensions are valid. It must only be used by functions that fill the
// buffer before returning it.
func newBlankBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]RGB, width*height),
	}
}

func checkDimensions(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// NewPixelBuffer returns a new buffer with the given dimensions. pix are the
// pixels in row-major order, it must contain exactly width * height elements.
// The content of pix is copied.
func NewPixelBuffer(width, height int, pix []RGB) (*PixelBuffer, error) {
	if dimErr := checkDimensions(width, height); dimErr != nil {
		return nil, dimErr
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %dx%d buffer requires %d pixels, got %d",
			ErrInvalidDimensions, width, height, width*height, len(pix))
	}
	res := newBlankBuffer(width, height)
	copy(res.pix, pix)
	return res, nil
}

// NewUniformBuffer returns a buffer where each pixel has the color c.
func NewUniformBuffer(width, height int, c RGB) (*PixelBuffer, error) {
	if dimErr := checkDimensions(width, height); dimErr != nil {
		return nil, dimErr
	}
	res := newBlankBuffer(width, height)
	for i := range res.pix {
		res.pix[i] = c
	}
	return res, nil
}

// BufferFromImage converts a decoded image to a PixelBuffer. The alpha
// channel is dropped.
// An image with empty bounds results in ErrEmptyBuffer.
func BufferFromImage(img image.Image) (*PixelBuffer, error) {
	if buf, ok := img.(*PixelBuffer); ok {
		return buf, nil
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: image has bounds %v", ErrEmptyBuffer, bounds)
	}
	width, height := bounds.Dx(), bounds.Dy()
	res := newBlankBuffer(width, height)
	switch src := img.(type) {
	case *image.RGBA:
		// most images we get from the resize libraries are RGBA, so avoid the
		// generic interface calls
		for y := 0; y < height; y++ {
			offset := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			row := res.pix[y*width : (y+1)*width]
			for x := range row {
				p := src.Pix[offset+4*x : offset+4*x+3]
				row[x] = RGB{R: p[0], G: p[1], B: p[2]}
			}
		}
	default:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				res.pix[y*width+x] = ConvertRGB(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
	}
	return res, nil
}

// Width returns the width of the buffer.
func (buf *PixelBuffer) Width() int {
	return buf.width
}

// Height returns the height of the buffer.
func (buf *PixelBuffer) Height() int {
	return buf.height
}

// Len returns the number of pixels in the buffer.
func (buf *PixelBuffer) Len() int {
	return len(buf.pix)
}

// ColorModel implements image.Image.
func (buf *PixelBuffer) ColorModel() color.Model {
	return RGBModel
}

// Bounds implements image.Image.
func (buf *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, buf.width, buf.height)
}

// At implements image.Image. As required by image.Image it returns the zero
// color for coordinates outside the buffer, use RGBAt to get an error instead.
func (buf *PixelBuffer) At(x, y int) color.Color {
	if !buf.inBounds(x, y) {
		return RGB{}
	}
	return buf.pix[y*buf.width+x]
}

func (buf *PixelBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < buf.width && y >= 0 && y < buf.height
}

// RGBAt returns the color at (x, y). It returns ErrOutOfBounds if the
// coordinates are not inside the buffer.
func (buf *PixelBuffer) RGBAt(x, y int) (RGB, error) {
	if !buf.inBounds(x, y) {
		return RGB{}, fmt.Errorf("%w: pixel (%d, %d) in %dx%d buffer",
			ErrOutOfBounds, x, y, buf.width, buf.height)
	}
	return buf.pix[y*buf.width+x], nil
}

// SubBuffer returns a copy of the rectangle with top left corner (x, y) and
// the given width and height.
// The rectangle must be completely inside the buffer, otherwise ErrOutOfBounds
// is returned.
func (buf *PixelBuffer) SubBuffer(x, y, width, height int) (*PixelBuffer, error) {
	if dimErr := checkDimensions(width, height); dimErr != nil {
		return nil, dimErr
	}
	if x < 0 || y < 0 || x+width > buf.width || y+height > buf.height {
		return nil, fmt.Errorf("%w: region %v not inside %dx%d buffer",
			ErrOutOfBounds, image.Rect(x, y, x+width, y+height), buf.width, buf.height)
	}
	res := newBlankBuffer(width, height)
	for row := 0; row < height; row++ {
		srcStart := (y+row)*buf.width + x
		copy(res.pix[row*width:(row+1)*width], buf.pix[srcStart:srcStart+width])
	}
	return res, nil
}

// SubBufferRect works as SubBuffer but takes a rectangle.
func (buf *PixelBuffer) SubBufferRect(r image.Rectangle) (*PixelBuffer, error) {
	return buf.SubBuffer(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// ToRGBA converts the buffer to an opaque *image.RGBA.
func (buf *PixelBuffer) ToRGBA() *image.RGBA {
	res := image.NewRGBA(buf.Bounds())
	for i, c := range buf.pix {
		res.Pix[4*i] = c.R
		res.Pix[4*i+1] = c.G
		res.Pix[4*i+2] = c.B
		res.Pix[4*i+3] = 0xff
	}
	return res
}

// drawBuffer copies src into buf with the top left corner at (x, y). The
// caller has to make sure that src fits.
func (buf *PixelBuffer) drawBuffer(src *PixelBuffer, x, y int) {
	for row := 0; row < src.height; row++ {
		dstStart := (y+row)*buf.width + x
		copy(buf.pix[dstStart:dstStart+src.width], src.pix[row*src.width:(row+1)*src.width])
	}
}
