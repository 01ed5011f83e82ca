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
	"math"
)

// ValidateTolerance returns ErrInvalidTolerance if tolerance is not in (0, 1].
func ValidateTolerance(tolerance float64) error {
	// the negated form also catches NaN
	if !(tolerance > 0.0 && tolerance <= 1.0) {
		return fmt.Errorf("%w: got %v", ErrInvalidTolerance, tolerance)
	}
	return nil
}

// KeepCount returns the number of samples that are kept from n samples given
// the tolerance: round(n * tolerance), but at least 1 and at most n.
func KeepCount(n int, tolerance float64) int {
	k := int(math.Round(float64(n) * tolerance))
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

// channelHistogram counts how often each value occurs in one channel.
type channelHistogram [256]int

// topMean returns the truncated mean of the k largest values in the histogram.
// Walking the buckets from 255 down is the same as sorting all samples in
// descending order and summing the first k.
func (h *channelHistogram) topMean(k int) uint8 {
	var sum uint64
	remaining := k
	for v := 255; v >= 0 && remaining > 0; v-- {
		count := h[v]
		if count > remaining {
			count = remaining
		}
		sum += uint64(v) * uint64(count)
		remaining -= count
	}
	return uint8(sum / uint64(k))
}

// RepresentativeColor computes the color that summarizes buf.
//
// For each channel independently all samples are sorted in descending order
// and only the top round(N * tolerance) samples are kept (N is the number of
// pixels). The result is the average of those samples (integer division).
// The kept red samples are not tied to the kept green or blue samples, so this
// is not the average of the brightest pixels.
//
// The number of kept samples is always at least 1, so a very small tolerance
// results in the maximum of each channel. A tolerance of 1 returns the plain
// average color.
//
// ErrEmptyBuffer is returned for an empty buffer and ErrInvalidTolerance if
// tolerance is not in (0, 1].
func RepresentativeColor(buf *PixelBuffer, tolerance float64) (RGB, error) {
	if tolErr := ValidateTolerance(tolerance); tolErr != nil {
		return RGB{}, tolErr
	}
	if buf == nil || buf.Len() == 0 {
		return RGB{}, ErrEmptyBuffer
	}
	var r, g, b channelHistogram
	for _, c := range buf.pix {
		r[c.R]++
		g[c.G]++
		b[c.B]++
	}
	k := KeepCount(buf.Len(), tolerance)
	return RGB{R: r.topMean(k), G: g.topMean(k), B: b.topMean(k)}, nil
}

// AverageColor returns the average color of buf, it is the same as
// RepresentativeColor with a tolerance of 1.
func AverageColor(buf *PixelBuffer) (RGB, error) {
	return RepresentativeColor(buf, 1.0)
}
