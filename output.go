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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OutputPrefix is the file name prefix used by NextOutputPath.
const OutputPrefix = "MosaicOutput"

// OutputName returns the file name of the n-th generated output, for example
// "MosaicOutput07.jpg" or "MosaicOutput12.jpg".
func OutputName(n int) string {
	return fmt.Sprintf("%s%02d.jpg", OutputPrefix, n)
}

// NextOutputPath returns the first path dir/OutputName(n) (n = 0, 1, ...)
// that does not exist yet.
// The file is not created, so two concurrent calls may return the same path.
func NextOutputPath(dir string) (string, error) {
	for n := 0; ; n++ {
		path := filepath.Join(dir, OutputName(n))
		_, statErr := os.Stat(path)
		switch {
		case errors.Is(statErr, fs.ErrNotExist):
			return path, nil
		case statErr != nil:
			return "", statErr
		}
	}
}
