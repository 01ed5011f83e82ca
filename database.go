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
	"os"
	"path/filepath"
	"sort"
)

// FSImageDB implements ImageStorage. It uses images stored on the filesystem
// and opens them on demand.
// Paths are either absolute or relative to Root.
type FSImageDB struct {
	Root  string
	Paths []string
}

// NewFSImageDB returns an empty database with the given root.
func NewFSImageDB(root string) *FSImageDB {
	return &FSImageDB{Root: root, Paths: nil}
}

// GetPath returns the path of the image with the given id.
func (db *FSImageDB) GetPath(id ImageID) string {
	path := db.Paths[id]
	if filepath.IsAbs(path) || db.Root == "" {
		return path
	}
	return filepath.Join(db.Root, path)
}

// NumImages returns the number of images in the database.
func (db *FSImageDB) NumImages() ImageID {
	return ImageID(len(db.Paths))
}

// Name returns the path of the image.
func (db *FSImageDB) Name(id ImageID) string {
	if id < 0 || id >= db.NumImages() {
		return fmt.Sprintf("image-%d", id)
	}
	return db.GetPath(id)
}

// LoadImage opens and decodes the image file.
func (db *FSImageDB) LoadImage(id ImageID) (image.Image, error) {
	if id < 0 || id >= db.NumImages() {
		return nil, fmt.Errorf("Invalid image id: Not associated with an image %d", id)
	}
	return DecodeImageFile(db.GetPath(id))
}

// AddPath adds a single file to the database.
func (db *FSImageDB) AddPath(path string) {
	db.Paths = append(db.Paths, path)
}

// AddDir adds all files from dir that are accepted by filter to the
// database. If filter is nil SupportedImage is used. If recursive is true
// subdirectories are searched as well.
// Files are added in lexical order.
func (db *FSImageDB) AddDir(dir string, recursive bool, filter SupportedImageFunc) error {
	if filter == nil {
		filter = SupportedImage
	}
	var paths []string
	var err error
	if recursive {
		paths, err = listRecursive(dir, filter)
	} else {
		paths, err = listNonRecursive(dir, filter)
	}
	if err != nil {
		return err
	}
	db.Paths = append(db.Paths, paths...)
	return nil
}

// GenFSDatabase returns a database containing all supported images in root
// (and its subdirectories if recursive is true).
func GenFSDatabase(root string, recursive bool, filter SupportedImageFunc) (*FSImageDB, error) {
	root, absErr := filepath.Abs(root)
	if absErr != nil {
		return nil, absErr
	}
	result := NewFSImageDB(root)
	if addErr := result.AddDir(root, recursive, filter); addErr != nil {
		return nil, addErr
	}
	return result, nil
}

func listRecursive(root string, filter SupportedImageFunc) ([]string, error) {
	var result []string
	walkFunc := func(path string, info os.FileInfo, err error) error {
		switch {
		case err != nil:
			return err
		case !info.IsDir() && filter(filepath.Ext(path)):
			result = append(result, path)
			return nil
		default:
			return nil
		}
	}
	// Walk visits files in lexical order
	if err := filepath.Walk(root, walkFunc); err != nil {
		return nil, err
	}
	return result, nil
}

func listNonRecursive(root string, filter SupportedImageFunc) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var result []string
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		// for symlinks stat the target to determine if it's a file
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}
		if !info.IsDir() && filter(filepath.Ext(entry.Name())) {
			result = append(result, path)
		}
	}
	sort.Strings(result)
	return result, nil
}
