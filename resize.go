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
	"sort"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// ImageResizer resizes a buffer to exactly the given width and height.
// The aspect ratio is not preserved. Both upscaling and downscaling must be
// supported.
//
// Implementations must return ErrInvalidDimensions if width or height is < 1,
// ErrEmptyBuffer if buf is nil or has no pixels and must be safe for
// concurrent use.
type ImageResizer interface {
	Resize(buf *PixelBuffer, width, height int) (*PixelBuffer, error)
}

// NfntResizer uses the nfnt/resize package to resize a buffer.
type NfntResizer struct {
	// InterP is the interpolation function to use.
	InterP resize.InterpolationFunction
}

// NewNfntResizer returns a new resizer given the interpolation function.
func NewNfntResizer(interP resize.InterpolationFunction) NfntResizer {
	return NfntResizer{interP}
}

// Resize calls nfnt/resize methods.
func (resizer NfntResizer) Resize(buf *PixelBuffer, width, height int) (*PixelBuffer, error) {
	if dimErr := checkDimensions(width, height); dimErr != nil {
		return nil, dimErr
	}
	if buf == nil || buf.Len() == 0 {
		return nil, ErrEmptyBuffer
	}
	if buf.Width() == width && buf.Height() == height {
		return buf, nil
	}
	scaled := resize.Resize(uint(width), uint(height), buf, resizer.InterP)
	return BufferFromImage(scaled)
}

// DrawResizer uses a scaler from golang.org/x/image/draw.
type DrawResizer struct {
	Scaler draw.Scaler
}

// NewDrawResizer returns a new resizer given the scaler, for example
// draw.CatmullRom.
func NewDrawResizer(scaler draw.Scaler) DrawResizer {
	return DrawResizer{Scaler: scaler}
}

// Resize scales the buffer with the x/image/draw scaler.
func (resizer DrawResizer) Resize(buf *PixelBuffer, width, height int) (*PixelBuffer, error) {
	if dimErr := checkDimensions(width, height); dimErr != nil {
		return nil, dimErr
	}
	if buf == nil || buf.Len() == 0 {
		return nil, ErrEmptyBuffer
	}
	if buf.Width() == width && buf.Height() == height {
		return buf, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	resizer.Scaler.Scale(dst, dst.Bounds(), buf, buf.Bounds(), draw.Src, nil)
	return BufferFromImage(dst)
}

// GetInterP returns an interpolation function given a desired quality.
// The higher the quality the better the interpolation should be, but execution
// time is higher. Currently supported are values between 0 and 4, each
// selecting a different interpolation function. Values greater than 4 are
// treated as 5 (Lanczos3).
func GetInterP(quality uint) resize.InterpolationFunction {
	switch quality {
	case 0:
		return resize.NearestNeighbor
	case 1:
		return resize.Bilinear
	case 2:
		return resize.Bicubic
	case 3:
		return resize.MitchellNetravali
	case 4:
		return resize.Lanczos2
	default:
		return resize.Lanczos3
	}
}

var interPNames = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

var scalerNames = map[string]draw.Scaler{
	"catmullrom":     draw.CatmullRom,
	"approxbilinear": draw.ApproxBiLinear,
	"draw-bilinear":  draw.BiLinear,
}

// InterPFromString parses the name of an nfnt interpolation function, for
// example "bilinear" or "lanczos3".
func InterPFromString(s string) (resize.InterpolationFunction, error) {
	if interP, has := interPNames[strings.ToLower(s)]; has {
		return interP, nil
	}
	return resize.NearestNeighbor, fmt.Errorf("Unknown interpolation function: %s", s)
}

// InterPString returns the name of an interpolation function as accepted by
// InterPFromString.
func InterPString(interP resize.InterpolationFunction) string {
	for name, f := range interPNames {
		if f == interP {
			return name
		}
	}
	return "unknown"
}

// ResizerNames returns all names accepted by ResizerFromString, sorted.
func ResizerNames() []string {
	res := make([]string, 0, len(interPNames)+len(scalerNames))
	for name := range interPNames {
		res = append(res, name)
	}
	for name := range scalerNames {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// ResizerFromString returns a resizer given its name. The names of nfnt
// interpolation functions return a NfntResizer, "catmullrom",
// "approxbilinear" and "draw-bilinear" return a DrawResizer.
// A number is treated as a quality and passed to GetInterP.
func ResizerFromString(s string) (ImageResizer, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if quality, parseErr := strconv.ParseUint(s, 10, 0); parseErr == nil {
		return NewNfntResizer(GetInterP(uint(quality))), nil
	}
	if interP, has := interPNames[s]; has {
		return NewNfntResizer(interP), nil
	}
	if scaler, has := scalerNames[s]; has {
		return NewDrawResizer(scaler), nil
	}
	return nil, fmt.Errorf("Unknown resizer %s, valid names: %s", s,
		strings.Join(ResizerNames(), ", "))
}

var (
	// DefaultResizer is the resizer that is used by default, if you're
	// looking for a resizer default argument this seems useful.
	DefaultResizer ImageResizer = NewNfntResizer(resize.MitchellNetravali)
)
