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
	"io"
	"runtime"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	// BufferSize is the (default) size of buffers. Some methods create buffered
	// channels, this parameter controls how big such buffers might be.
	// Usually such buffers store no big data (ints, bools etc.).
	BufferSize = 1000
)

// DefaultRoutines returns the number of go routines used if nothing else is
// configured: twice the number of CPUs.
func DefaultRoutines() int {
	res := runtime.NumCPU() * 2
	if res <= 0 {
		// don't know if this can happen, better safe than sorry
		res = 4
	}
	return res
}

// ProgressFunc is a function that is used to inform a caller about the progress
// of a called function.
// For example if we process thousands of images we might wish to know
// how far the call is and give feedback to the user.
// The called method calls the process function after each iteration with the
// number of items processed so far.
//
// A ProgressFunc is always called from a single go routine.
type ProgressFunc func(num int)

func progressLine(prefix string, num, max, step int) (string, bool) {
	if step == 0 || max == 0 {
		return "", false
	}
	if !(step < 0 || num%step == 0 || num == max) {
		return "", false
	}
	percent := (float64(num) / float64(max)) * 100.0
	if percent > 100.0 {
		percent = 100.0
	}
	if prefix == "" {
		prefix = "Progress"
	}
	return fmt.Sprintf("%s: %d of %d (%.1f%%)", prefix, num, max, percent), true
}

// LoggerProgressFunc is a parameterized ProgressFunc that logs to log.
// The output describes the progress (how many of how many objects processed).
// Log messages may have an addition prefix. max is the total number of elements
// to process and step describes how often to print to the log (for example
// step = 100 every 100 items). The last item is always reported.
func LoggerProgressFunc(prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if line, ok := progressLine(prefix, num, max, step); ok {
			log.Info(line)
		}
	}
}

// StdProgressFunc is a parameterized ProgressFunc that writes to the
// specified writer, see LoggerProgressFunc.
func StdProgressFunc(w io.Writer, prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if line, ok := progressLine(prefix, num, max, step); ok {
			fmt.Fprintln(w, line)
		}
	}
}

// ProgressStep returns a reasonable step for progress reports on max items:
// roughly every ten percent, but at least every 100 items.
func ProgressStep(max int) int {
	return IntMax(1, IntMin(100, max/10))
}

// callProgress calls progress if it is not nil.
func callProgress(progress ProgressFunc, num int) {
	if progress != nil {
		progress(num)
	}
}

// ParseDimensions parses a string of the form "AxB" where A and B are positive
// integers.
func ParseDimensions(s string) (int, int, error) {
	split := strings.Split(strings.ToLower(s), "x")
	if len(split) != 2 {
		return -1, -1, fmt.Errorf("Invalid dimension format: %s. Expect \"AxB\"", s)
	}
	first, second := strings.TrimSpace(split[0]), strings.TrimSpace(split[1])
	firstInt, firstErr := strconv.Atoi(first)
	if firstErr != nil {
		return -1, -1, firstErr
	}
	secondInt, secondErr := strconv.Atoi(second)
	if secondErr != nil {
		return -1, -1, secondErr
	}
	if firstInt < 1 || secondInt < 1 {
		return -1, -1, fmt.Errorf("%w: dimensions must be positive, got %d and %d",
			ErrInvalidDimensions, firstInt, secondInt)
	}
	return firstInt, secondInt, nil
}

// IntMin returns the minimum of a and b.
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the maximum of a and b.
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
