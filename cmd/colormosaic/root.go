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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Caspired/colormosaic"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options are the command line flags.
type options struct {
	root        string
	save        string
	xTiles      int
	yTiles      int
	tiles       string
	thumbWidth  int
	thumbHeight int
	tolerance   float64
	interp      string
	quality     int
	recursive   bool
	routines    int
	verbose     bool
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(stderr, "Error:", err)
	code := exitCode(err)
	if code == exitUsage {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return code
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	defaults := colormosaic.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "colormosaic [flags] <reference> <thumbnail file or directory>...",
		Short: "Create a photo mosaic of a reference image",
		Long: `colormosaic divides the reference image into a grid of tiles and replaces
each tile by the thumbnail with the closest color.

The color of an image is the average of the brightest samples in each channel,
the tolerance controls the fraction of samples that is used (1 uses all samples).

Thumbnails can be image files or directories containing images
(jpg, jpeg, png, gif and webp).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return usage("Expected a reference image and at least one thumbnail path, got %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if strings.HasPrefix(err.Error(), "invalid argument") {
			return &exitError{code: exitInvalid, err: err}
		}
		return &exitError{code: exitUsage, err: err}
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.root, "root", "", "base directory for relative paths")
	flags.StringVarP(&opts.save, "save", "o", "", "output file (.jpg or .png), default MosaicOutputNN.jpg next to the reference")
	flags.IntVarP(&opts.xTiles, "xtiles", "x", defaults.XTiles, "number of tiles in each row")
	flags.IntVarP(&opts.yTiles, "ytiles", "y", defaults.YTiles, "number of tiles in each column")
	flags.StringVar(&opts.tiles, "tiles", "", "number of tiles in the form AxB, overrides --xtiles and --ytiles")
	flags.IntVarP(&opts.thumbWidth, "width", "W", 0, "width of each thumbnail, default the tile width")
	flags.IntVarP(&opts.thumbHeight, "height", "H", 0, "height of each thumbnail, default the tile height")
	flags.Float64VarP(&opts.tolerance, "tolerance", "t", defaults.ColorTolerance, "color tolerance in (0, 1]")
	flags.StringVar(&opts.interp, "interp", "mitchell", "resize interpolation: "+strings.Join(colormosaic.ResizerNames(), ", ")+" or a quality between 0 and 5")
	flags.IntVar(&opts.quality, "quality", colormosaic.DefaultJPGQuality, "jpeg quality between 1 and 100")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "search thumbnail directories recursively")
	flags.IntVarP(&opts.routines, "routines", "j", defaults.NumRoutines, "number of go routines")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug output")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "colormosaic", version)
		},
	}
}

// config validates the numeric flags and creates the generator config.
func (opts *options) config(cmd *cobra.Command) (colormosaic.Config, error) {
	cfg := colormosaic.DefaultConfig()
	cfg.XTiles, cfg.YTiles = opts.xTiles, opts.yTiles
	if cmd.Flags().Changed("tiles") {
		x, y, parseErr := colormosaic.ParseDimensions(opts.tiles)
		if parseErr != nil {
			return cfg, invalid("Invalid value for --tiles: %w", parseErr)
		}
		cfg.XTiles, cfg.YTiles = x, y
	}
	if cfg.XTiles < 1 || cfg.YTiles < 1 {
		return cfg, invalid("Number of tiles must be at least 1, got %dx%d", cfg.XTiles, cfg.YTiles)
	}
	if cmd.Flags().Changed("width") && opts.thumbWidth < 1 {
		return cfg, invalid("Thumbnail width must be at least 1, got %d", opts.thumbWidth)
	}
	if cmd.Flags().Changed("height") && opts.thumbHeight < 1 {
		return cfg, invalid("Thumbnail height must be at least 1, got %d", opts.thumbHeight)
	}
	cfg.ThumbWidth, cfg.ThumbHeight = opts.thumbWidth, opts.thumbHeight
	if tolErr := colormosaic.ValidateTolerance(opts.tolerance); tolErr != nil {
		return cfg, failure("Invalid value for --tolerance: %w", tolErr)
	}
	cfg.ColorTolerance = opts.tolerance
	if opts.quality < 1 || opts.quality > 100 {
		return cfg, invalid("jpeg quality must be a value between 1 and 100, got %d", opts.quality)
	}
	if opts.routines < 1 {
		return cfg, invalid("Number of routines must be at least 1, got %d", opts.routines)
	}
	cfg.NumRoutines = opts.routines
	resizer, resizerErr := colormosaic.ResizerFromString(opts.interp)
	if resizerErr != nil {
		return cfg, invalid("Invalid value for --interp: %w", resizerErr)
	}
	cfg.Resizer = resizer
	if opts.save != "" && !colormosaic.SupportedOutput(filepath.Ext(opts.save)) {
		return cfg, invalid("Unsupported output file %s, expected .jpg, .jpeg or .png", opts.save)
	}
	return cfg, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progressFactory returns the progress output for the stages: a progress line
// on stderr if it is a terminal, log messages in verbose mode and nothing
// otherwise.
func progressFactory(stderr io.Writer, verbose bool) colormosaic.ProgressFactory {
	switch {
	case isTerminal(stderr):
		return func(stage string, max int) colormosaic.ProgressFunc {
			return colormosaic.StdProgressFunc(stderr, stage, max, colormosaic.ProgressStep(max))
		}
	case verbose:
		return colormosaic.LoggerProgress
	default:
		return nil
	}
}

func generate(cmd *cobra.Command, opts *options, args []string, stdout, stderr io.Writer) error {
	log.SetOutput(stderr)
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	cfg, cfgErr := opts.config(cmd)
	if cfgErr != nil {
		return cfgErr
	}
	cfg.Progress = progressFactory(stderr, opts.verbose)

	state, stateErr := newExecutorState(opts.root)
	if stateErr != nil {
		return stateErr
	}
	if refErr := state.setReference(args[0]); refErr != nil {
		return refErr
	}
	if thumbErr := state.addThumbnails(args[1:], opts.recursive); thumbErr != nil {
		return thumbErr
	}
	if state.Storage.NumImages() == 0 {
		return failure("No valid thumbnails found")
	}
	if outErr := state.setOutput(opts.save); outErr != nil {
		return outErr
	}

	reference, refErr := colormosaic.LoadPixelBufferFile(state.Reference)
	if refErr != nil {
		return failure("Can't load reference image: %w", refErr)
	}
	log.WithFields(log.Fields{
		"reference":  state.Reference,
		"thumbnails": state.Storage.NumImages(),
		"tiles":      fmt.Sprintf("%dx%d", cfg.XTiles, cfg.YTiles),
		"tolerance":  cfg.ColorTolerance,
	}).Info("Generating mosaic")

	mosaic, mosaicErr := colormosaic.GenerateFromStorage(reference, state.Storage, cfg)
	switch {
	case errors.Is(mosaicErr, colormosaic.ErrNoCandidates):
		return failure("No valid thumbnails found")
	case mosaicErr != nil:
		return failure("Can't create mosaic: %w", mosaicErr)
	}
	if saveErr := colormosaic.SaveImage(state.Output, mosaic, opts.quality); saveErr != nil {
		return failure("Can't save mosaic: %w", saveErr)
	}
	fmt.Fprintln(stdout, "Mosaic saved to", state.Output)
	return nil
}
