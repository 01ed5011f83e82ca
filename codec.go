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
	_ "image/gif" // Register GIF format
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format
)

const (
	// DefaultJPGQuality is the jpeg quality used if nothing else is given.
	DefaultJPGQuality = 100
)

// DecodeImageFile opens and decodes an image file. Supported formats are jpeg,
// png, gif and webp.
func DecodeImageFile(path string) (image.Image, error) {
	r, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer r.Close()
	img, format, decodeErr := image.Decode(r)
	if decodeErr != nil {
		return nil, fmt.Errorf("Can't decode image %s (format: %q): %w", path, format, decodeErr)
	}
	return img, nil
}

// LoadPixelBufferFile decodes an image file into a PixelBuffer.
func LoadPixelBufferFile(path string) (*PixelBuffer, error) {
	img, imgErr := DecodeImageFile(path)
	if imgErr != nil {
		return nil, imgErr
	}
	buf, bufErr := BufferFromImage(img)
	if bufErr != nil {
		return nil, fmt.Errorf("Can't read %s: %w", path, bufErr)
	}
	return buf, nil
}

// SupportedOutput returns true if ext (like ".jpg") is a valid extension for
// SaveImage.
func SupportedOutput(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// EncodeImage writes img to w. format must be "jpeg" or "png", jpgQuality is
// only used for jpeg and must be between 1 and 100.
func EncodeImage(w io.Writer, img image.Image, format string, jpgQuality int) error {
	switch format {
	case "jpeg":
		if jpgQuality < 1 || jpgQuality > 100 {
			return fmt.Errorf("jpeg quality must be a value between 1 and 100, got %d", jpgQuality)
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpgQuality})
	case "png":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("Unsupported output format: %s", format)
	}
}

// SaveImage writes the buffer to file, the format is determined by the file
// extension (.jpg, .jpeg or .png).
func SaveImage(file string, buf *PixelBuffer, jpgQuality int) error {
	var format string
	ext := filepath.Ext(file)
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".png":
		format = "png"
	default:
		return fmt.Errorf("Unsupported file type: %s, expected .jpg or .png", ext)
	}
	outFile, outErr := os.Create(file)
	if outErr != nil {
		return outErr
	}
	encErr := EncodeImage(outFile, buf.ToRGBA(), format, jpgQuality)
	closeErr := outFile.Close()
	if encErr != nil {
		return encErr
	}
	return closeErr
}
