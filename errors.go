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
)

var (
	// ErrInvalidDimensions is returned whenever a non-positive width, height or
	// tile count is requested, or when pixel data does not match the requested
	// dimensions.
	ErrInvalidDimensions = errors.New("Invalid dimensions")

	// ErrOutOfBounds is returned for pixel access or sub-region extraction
	// outside of a buffer.
	ErrOutOfBounds = errors.New("Out of bounds")

	// ErrNoCandidates is returned if a mosaic should be created from an empty
	// thumbnail pool.
	ErrNoCandidates = errors.New("No candidate images")

	// ErrEmptyBuffer is returned if a representative color is requested for
	// a buffer without pixels.
	ErrEmptyBuffer = errors.New("Empty buffer")

	// ErrInvalidTolerance is returned if the color tolerance is not in (0, 1].
	ErrInvalidTolerance = errors.New("Color tolerance must be in (0, 1]")
)
