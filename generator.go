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
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ProgressFactory creates a ProgressFunc for a stage of the mosaic generation
// with max items. The stage is one of "thumbnails", "tiles" and "selection".
type ProgressFactory func(stage string, max int) ProgressFunc

// LoggerProgress is a ProgressFactory that returns LoggerProgressFuncs.
func LoggerProgress(stage string, max int) ProgressFunc {
	return LoggerProgressFunc(stage, max, ProgressStep(max))
}

// Config describes how a mosaic is generated. A Config is passed by value and
// never changed by the generation, so the same Config can be used for any
// number of runs.
type Config struct {
	// XTiles and YTiles are the number of tiles in each row / column.
	XTiles, YTiles int

	// ThumbWidth and ThumbHeight is the size of each thumbnail in the mosaic.
	// If 0 the size of the tiles in the reference image is used.
	ThumbWidth, ThumbHeight int

	// ColorTolerance is the fraction of the brightest samples in each channel
	// used for the representative color, see RepresentativeColor.
	ColorTolerance float64

	// NumRoutines is the number of go routines used in each stage.
	NumRoutines int

	// Resizer is used to scale the thumbnails, if nil DefaultResizer is used.
	Resizer ImageResizer

	// Selector assigns the thumbnails to tiles. If nil a
	// NearestColorSelector is used.
	Selector ImageSelector

	// Progress creates the progress functions for the stages, may be nil.
	Progress ProgressFactory
}

// DefaultConfig returns a config with 50x50 tiles, a tolerance of 1 (plain
// average) and the thumbnail size set to the tile size.
func DefaultConfig() Config {
	return Config{
		XTiles:         50,
		YTiles:         50,
		ColorTolerance: 1.0,
		NumRoutines:    DefaultRoutines(),
		Resizer:        DefaultResizer,
	}
}

// Validate checks the config values. Tile numbers must be ≥ 1, thumbnail
// sizes must not be negative and the tolerance must be in (0, 1].
func (cfg Config) Validate() error {
	if cfg.XTiles < 1 || cfg.YTiles < 1 {
		return fmt.Errorf("%w: number of tiles must be positive, got %dx%d",
			ErrInvalidDimensions, cfg.XTiles, cfg.YTiles)
	}
	if cfg.ThumbWidth < 0 || cfg.ThumbHeight < 0 {
		return fmt.Errorf("%w: thumbnail size must be positive, got %dx%d",
			ErrInvalidDimensions, cfg.ThumbWidth, cfg.ThumbHeight)
	}
	return ValidateTolerance(cfg.ColorTolerance)
}

// ThumbSize returns the size of the thumbnails in the mosaic given the size
// of the tiles in the reference.
func (cfg Config) ThumbSize(tileWidth, tileHeight int) (int, int) {
	width, height := cfg.ThumbWidth, cfg.ThumbHeight
	if width < 1 {
		width = tileWidth
	}
	if height < 1 {
		height = tileHeight
	}
	return width, height
}

// MosaicSize returns the size of the mosaic created for a reference with the
// given size.
func (cfg Config) MosaicSize(refWidth, refHeight int) (int, int) {
	tileWidth, tileHeight := TileSize(refWidth, refHeight, cfg.XTiles, cfg.YTiles)
	thumbWidth, thumbHeight := cfg.ThumbSize(tileWidth, tileHeight)
	return cfg.XTiles * thumbWidth, cfg.YTiles * thumbHeight
}

func (cfg Config) resizer() ImageResizer {
	if cfg.Resizer == nil {
		return DefaultResizer
	}
	return cfg.Resizer
}

func (cfg Config) routines() int {
	if cfg.NumRoutines <= 0 {
		return 1
	}
	return cfg.NumRoutines
}

func (cfg Config) progress(stage string, max int) ProgressFunc {
	if cfg.Progress == nil {
		return nil
	}
	return cfg.Progress(stage, max)
}

func (cfg Config) selector(max int) ImageSelector {
	if cfg.Selector != nil {
		return cfg.Selector
	}
	return NewNearestColorSelector(cfg.routines(), cfg.progress("selection", max))
}

// LoadReference converts a decoded image into the reference buffer.
func LoadReference(img image.Image) (*PixelBuffer, error) {
	buf, bufErr := BufferFromImage(img)
	if bufErr != nil {
		return nil, fmt.Errorf("Can't load reference image: %w", bufErr)
	}
	return buf, nil
}

// run holds the state of a single mosaic generation.
type run struct {
	cfg                     Config
	logger                  *log.Entry
	reference               *PixelBuffer
	tileWidth, tileHeight   int
	thumbWidth, thumbHeight int
}

func newRun(reference *PixelBuffer, cfg Config) (*run, error) {
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}
	if reference == nil || reference.Len() == 0 {
		return nil, fmt.Errorf("%w: reference image", ErrEmptyBuffer)
	}
	r := &run{cfg: cfg, reference: reference}
	r.tileWidth, r.tileHeight = TileSize(reference.Width(), reference.Height(), cfg.XTiles, cfg.YTiles)
	r.thumbWidth, r.thumbHeight = cfg.ThumbSize(r.tileWidth, r.tileHeight)
	r.logger = log.WithFields(log.Fields{
		"run":   uuid.New().String(),
		"tiles": fmt.Sprintf("%dx%d", cfg.XTiles, cfg.YTiles),
		"thumb": fmt.Sprintf("%dx%d", r.thumbWidth, r.thumbHeight),
	})
	return r, nil
}

// GenerateMosaic creates a mosaic of reference using the thumbnails.
//
// The stages run strictly one after another: the thumbnails are resized to the
// thumbnail size and their colors computed, then the reference is divided into
// tiles and the tile colors are computed, each tile is assigned the closest
// thumbnail and finally the mosaic is composed.
// The resulting buffer has the size cfg.MosaicSize(reference.Width(), reference.Height()).
//
// ErrNoCandidates is returned if thumbs is empty. Any error aborts the
// generation, no stage is retried.
func GenerateMosaic(reference *PixelBuffer, thumbs []*Thumbnail, cfg Config) (*PixelBuffer, error) {
	r, runErr := newRun(reference, cfg)
	if runErr != nil {
		return nil, runErr
	}
	if len(thumbs) == 0 {
		return nil, ErrNoCandidates
	}
	start := time.Now()
	prepared, prepareErr := PrepareThumbnails(thumbs, cfg.resizer(), r.thumbWidth, r.thumbHeight,
		cfg.ColorTolerance, cfg.routines(), cfg.progress("thumbnails", len(thumbs)))
	if prepareErr != nil {
		return nil, prepareErr
	}
	r.logger.WithFields(log.Fields{
		"thumbnails": len(prepared),
		"took":       time.Since(start),
	}).Debug("Prepared thumbnails")
	return r.generate(prepared)
}

// GenerateFromStorage works as GenerateMosaic but reads the thumbnails from
// storage. Each image is resized as soon as it has been decoded, so at most
// cfg.NumRoutines images in original size are held in memory.
//
// Images that can't be loaded are logged and skipped. If no image could be
// loaded ErrNoCandidates is returned.
func GenerateFromStorage(reference *PixelBuffer, storage ImageStorage, cfg Config) (*PixelBuffer, error) {
	r, runErr := newRun(reference, cfg)
	if runErr != nil {
		return nil, runErr
	}
	ids := IDList(storage)
	if len(ids) == 0 {
		return nil, ErrNoCandidates
	}
	start := time.Now()
	prepared, prepareErr := r.loadStorage(storage, ids)
	if prepareErr != nil {
		return nil, prepareErr
	}
	if len(prepared) == 0 {
		return nil, fmt.Errorf("%w: none of the %d images could be loaded",
			ErrNoCandidates, len(ids))
	}
	r.logger.WithFields(log.Fields{
		"thumbnails": len(prepared),
		"skipped":    len(ids) - len(prepared),
		"took":       time.Since(start),
	}).Debug("Prepared thumbnails")
	return r.generate(prepared)
}

func (r *run) loadStorage(storage ImageStorage, ids []ImageID) ([]Thumbnail, error) {
	loaded := make([]Thumbnail, len(ids))
	ok := make([]bool, len(ids))
	progress := r.cfg.progress("thumbnails", len(ids))
	resizer := r.cfg.resizer()

	var g errgroup.Group
	g.SetLimit(r.cfg.routines())
	var m sync.Mutex
	done := 0
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			defer func() {
				m.Lock()
				done++
				callProgress(progress, done)
				m.Unlock()
			}()
			name := storage.Name(id)
			img, imgErr := storage.LoadImage(id)
			if imgErr != nil {
				r.logger.WithFields(log.Fields{
					log.ErrorKey: imgErr,
					"image":      name,
				}).Warn("Can't load thumbnail, ignoring it")
				return nil
			}
			thumb, thumbErr := LoadThumbnail(img, name)
			if thumbErr != nil {
				r.logger.WithFields(log.Fields{
					log.ErrorKey: thumbErr,
					"image":      name,
				}).Warn("Can't load thumbnail, ignoring it")
				return nil
			}
			prepared, prepareErr := thumb.Prepare(resizer, r.thumbWidth, r.thumbHeight, r.cfg.ColorTolerance)
			if prepareErr != nil {
				return prepareErr
			}
			loaded[i] = prepared
			ok[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// keep storage order, just drop the images that failed
	res := make([]Thumbnail, 0, len(ids))
	for i, thumb := range loaded {
		if ok[i] {
			res = append(res, thumb)
		}
	}
	return res, nil
}

// generate runs all stages after the thumbnails have been prepared.
func (r *run) generate(thumbs []Thumbnail) (*PixelBuffer, error) {
	cfg := r.cfg
	start := time.Now()
	divider := NewFixedNumDivider(cfg.XTiles, cfg.YTiles)
	dist, distErr := divider.Divide(r.reference.Bounds())
	if distErr != nil {
		return nil, distErr
	}
	tiles, tilesErr := DivideBuffer(r.reference, dist, cfg.routines())
	if tilesErr != nil {
		return nil, tilesErr
	}
	numTiles := dist.Size()
	if sampleErr := SampleTiles(tiles, cfg.ColorTolerance, cfg.routines(),
		cfg.progress("tiles", numTiles)); sampleErr != nil {
		return nil, sampleErr
	}
	r.logger.WithFields(log.Fields{
		"tile": fmt.Sprintf("%dx%d", r.tileWidth, r.tileHeight),
		"took": time.Since(start),
	}).Debug("Computed tile colors")

	start = time.Now()
	assignment, selectErr := cfg.selector(numTiles).SelectImages(tiles, thumbs)
	if selectErr != nil {
		return nil, selectErr
	}
	used := 0
	for _, count := range assignment.Counts(len(thumbs)) {
		if count > 0 {
			used++
		}
	}
	r.logger.WithFields(log.Fields{
		"used": used,
		"took": time.Since(start),
	}).Debug("Selected thumbnails")

	start = time.Now()
	mosaic, mosaicErr := ComposeMosaic(thumbs, assignment, r.thumbWidth, r.thumbHeight)
	if mosaicErr != nil {
		return nil, mosaicErr
	}
	r.logger.WithFields(log.Fields{
		"size": fmt.Sprintf("%dx%d", mosaic.Width(), mosaic.Height()),
		"took": time.Since(start),
	}).Debug("Composed mosaic")
	return mosaic, nil
}
