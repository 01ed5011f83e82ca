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
	"os"
	"path/filepath"

	"github.com/Caspired/colormosaic"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

// Exit codes of the program.
const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
	exitUsage   = 3
)

// exitError is an error together with the exit code of the program.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func failure(format string, a ...interface{}) error {
	return &exitError{code: exitFailure, err: fmt.Errorf(format, a...)}
}

func invalid(format string, a ...interface{}) error {
	return &exitError{code: exitInvalid, err: fmt.Errorf(format, a...)}
}

func usage(format string, a ...interface{}) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, a...)}
}

// exitCode returns the exit code for an error returned by the root command.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitFailure
}

// ExecutorState holds the resolved inputs of a single invocation.
type ExecutorState struct {
	// WorkingDir is the absolute directory relative paths are resolved against,
	// either --root or the current directory.
	WorkingDir string
	Reference  string
	Storage    *colormosaic.FSImageDB
	Output     string
}

// GetPath returns the absolute path given some other path.
// If the user used an absolute path it is used as is, a relative path is
// joined with the working directory.
//
// The home directory can be used like on Unix: ~/Pictures is the Pictures
// directory in the home directory of the user.
func (state *ExecutorState) GetPath(path string) (string, error) {
	// first extend with homedir
	res, pathErr := homedir.Expand(path)
	if pathErr != nil {
		return "", pathErr
	}
	if !filepath.IsAbs(res) {
		// join with base dir
		res = filepath.Join(state.WorkingDir, res)
	}
	// now convert to an absolute path again
	return filepath.Abs(res)
}

// newExecutorState resolves the working directory. root may be empty in which
// case the current directory is used, otherwise it must be an existing
// directory.
func newExecutorState(root string) (*ExecutorState, error) {
	if root == "" {
		dir, err := filepath.Abs(".")
		if err != nil {
			return nil, failure("Unable to retrieve path: %w", err)
		}
		return &ExecutorState{WorkingDir: dir}, nil
	}
	state := &ExecutorState{}
	dir, pathErr := state.GetPath(root)
	if pathErr != nil {
		return nil, failure("Invalid root directory %s: %w", root, pathErr)
	}
	info, statErr := os.Stat(dir)
	switch {
	case statErr != nil:
		return nil, failure("Root directory %s does not exist: %w", root, statErr)
	case !info.IsDir():
		return nil, failure("Root %s is not a directory", root)
	}
	state.WorkingDir = dir
	return state, nil
}

// setReference resolves and checks the reference image path.
func (state *ExecutorState) setReference(path string) error {
	ref, pathErr := state.GetPath(path)
	if pathErr != nil {
		return failure("Invalid reference path %s: %w", path, pathErr)
	}
	info, statErr := os.Stat(ref)
	switch {
	case statErr != nil:
		return failure("Reference image %s not found: %w", path, statErr)
	case info.IsDir():
		return failure("Reference image %s is a directory", path)
	}
	state.Reference = ref
	return nil
}

// addThumbnails adds all thumbnail arguments to the storage. Directories are
// searched for supported images, files are added if they have a supported
// extension. Paths that don't exist are logged and skipped.
func (state *ExecutorState) addThumbnails(paths []string, recursive bool) error {
	if state.Storage == nil {
		state.Storage = colormosaic.NewFSImageDB(state.WorkingDir)
	}
	for _, path := range paths {
		abs, pathErr := state.GetPath(path)
		if pathErr != nil {
			return failure("Invalid thumbnail path %s: %w", path, pathErr)
		}
		info, statErr := os.Stat(abs)
		if statErr != nil {
			log.WithFields(log.Fields{
				log.ErrorKey: statErr,
				"path":       abs,
			}).Warn("Could not find thumbnail path, ignoring it")
			continue
		}
		if info.IsDir() {
			if addErr := state.Storage.AddDir(abs, recursive, colormosaic.SupportedImage); addErr != nil {
				return failure("Can't read thumbnail directory %s: %w", path, addErr)
			}
			continue
		}
		if !colormosaic.SupportedImage(filepath.Ext(abs)) {
			log.WithField("file", abs).Warn("Ignoring file with unsupported extension")
			continue
		}
		state.Storage.AddPath(abs)
	}
	return nil
}

// setOutput resolves the output path. If save is empty the first free
// MosaicOutputNN.jpg next to the reference image is used.
func (state *ExecutorState) setOutput(save string) error {
	if save == "" {
		path, pathErr := colormosaic.NextOutputPath(filepath.Dir(state.Reference))
		if pathErr != nil {
			return failure("Can't determine output path: %w", pathErr)
		}
		state.Output = path
		return nil
	}
	path, pathErr := state.GetPath(save)
	if pathErr != nil {
		return failure("Invalid output path %s: %w", save, pathErr)
	}
	state.Output = path
	return nil
}
