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

// Package colormosaic generates photo mosaics. A reference image is divided
// into a grid of tiles and each tile is replaced by the candidate image
// (thumbnail) whose representative color is closest to the color of the tile.
//
// The representative color of an image is a per-channel trimmed mean: for each
// of the red, green and blue channels only the brightest fraction of the
// samples (the color tolerance) is averaged. A tolerance of 1 gives the plain
// average color.
//
// Thumbnails can be used for any number of tiles. Ties are resolved in favor of
// the thumbnail that comes first, so the same input always produces the same
// mosaic, no matter how many go routines are used.
//
// It ships with an executable program (cmd/colormosaic) that reads the images
// from the filesystem and writes the mosaic as jpeg or png.
package colormosaic
