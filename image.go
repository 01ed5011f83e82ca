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
	"strings"
)

// SupportedImageFunc is a function that takes a file extension and decides if
// this file extension is supported.
//
// The extension passed to this function could be for example ".txt" or ".jpg".
// SupportedImage is the default implementation.
type SupportedImageFunc func(ext string) bool

// DefaultImageExtensions are the file extensions accepted by SupportedImage.
var DefaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// SupportedImage is an implementation of SupportedImageFunc accepting all
// DefaultImageExtensions, the case of ext does not matter.
func SupportedImage(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range DefaultImageExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ImageID is used to unambiguously identify an image in an ImageStorage.
type ImageID int

// ImageStorage is used to administrate a collection of candidate images.
// Images are not stored in memory but are identified by an id and can be
// loaded into memory when required.
// A storage has a maximal id and can be used to access images with ids smaller
// than the the number of images.
// LoadImage should return an error if the image id is not associated
// with any image data or if there is an error reading the image (e.g. from
// the filesystem).
//
// Implementations must be safe for concurrent use.
type ImageStorage interface {
	// NumImages returns the number of images in the storage as an ImageID.
	// All ids < than NumImages are considered valid and can be retrieved via
	// LoadImage.
	NumImages() ImageID

	// LoadImage loads an image into memory.
	LoadImage(id ImageID) (image.Image, error)

	// Name returns a human readable name of the image (for example the path),
	// it is used in log messages.
	Name(id ImageID) string
}

// IDList returns the list [0, 1, ..., storage.NumImages - 1].
func IDList(storage ImageStorage) []ImageID {
	numImages := storage.NumImages()
	res := make([]ImageID, numImages)
	var i ImageID
	for ; i < numImages; i++ {
		res[i] = i
	}
	return res
}

// MemoryImageDB is an ImageStorage holding images that are already decoded.
type MemoryImageDB struct {
	Images []image.Image
	Names  []string
}

// NewMemoryImageDB returns a storage for the given images, the names are
// generated from the position in the list.
func NewMemoryImageDB(images ...image.Image) *MemoryImageDB {
	names := make([]string, len(images))
	for i := range images {
		names[i] = fmt.Sprintf("image-%d", i)
	}
	return &MemoryImageDB{Images: images, Names: names}
}

// NumImages returns the number of images.
func (db *MemoryImageDB) NumImages() ImageID {
	return ImageID(len(db.Images))
}

// LoadImage returns the image with the given id.
func (db *MemoryImageDB) LoadImage(id ImageID) (image.Image, error) {
	if id < 0 || id >= db.NumImages() {
		return nil, fmt.Errorf("Invalid image id: Not associated with an image %d", id)
	}
	return db.Images[id], nil
}

// Name returns the name of the image.
func (db *MemoryImageDB) Name(id ImageID) string {
	if id < 0 || int(id) >= len(db.Names) {
		return fmt.Sprintf("image-%d", id)
	}
	return db.Names[id]
}
