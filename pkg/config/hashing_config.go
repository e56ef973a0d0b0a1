// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the validated run configuration for newcrc and the
// loader that layers flags, environment and config files into it.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	hashengines "github.com/Luxuse/NewCrc/pkg/hashing/engines"
	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
	"github.com/Luxuse/NewCrc/pkg/logging"
	"github.com/Luxuse/NewCrc/pkg/manifest"
	"github.com/Luxuse/NewCrc/pkg/serialization"
	"github.com/Luxuse/NewCrc/pkg/tracing"
)

const (
	// DefaultSource is the directory scanned when none is given.
	DefaultSource = "."
	// DefaultOutputDir receives the manifest.
	DefaultOutputDir = "Hashes"
	// DefaultOutputName is the manifest file name.
	DefaultOutputName = "checksums.txt"
	// AutoOutputName selects CRC.<extension> for the configured algorithm.
	AutoOutputName = "auto"
)

// gitRelatedPaths are skipped when git paths are ignored.
var gitRelatedPaths = []string{
	".git",
	".gitignore",
	".gitattributes",
	".github",
	".gitmodules",
}

// ValidationError reports an unusable configuration value.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Progress receives task counts while a run hashes files.
type Progress interface {
	serialization.Observer
	// Begin is called once with the number of files about to be hashed.
	Begin(total int)
	// Finish is called once all files are done.
	Finish()
}

// HashingConfig describes one checksum run.
type HashingConfig struct {
	source        string
	outputDir     string
	outputName    string
	algorithm     hashengines.Algorithm
	fullLoadLimit int64
	workers       int
	ignoredPaths  []string
	ignoreGit     bool
	logger        logging.Logger
}

// NewHashingConfig returns a configuration with defaults: the current
// directory, ./Hashes/checksums.txt, XXH3, a 200 MiB full-load limit and one
// worker per CPU.
func NewHashingConfig() *HashingConfig {
	return &HashingConfig{
		source:        DefaultSource,
		outputDir:     DefaultOutputDir,
		outputName:    DefaultOutputName,
		algorithm:     hashengines.DefaultAlgorithm,
		fullLoadLimit: hashio.DefaultFullLoadLimit,
		workers:       runtime.NumCPU(),
		ignoredPaths:  []string{},
		logger:        logging.Discard(),
	}
}

// SetSource sets the directory to scan.
func (c *HashingConfig) SetSource(dir string) *HashingConfig {
	c.source = dir
	return c
}

// SetOutputDir sets the directory the manifest is written to. It is created
// if missing.
func (c *HashingConfig) SetOutputDir(dir string) *HashingConfig {
	c.outputDir = dir
	return c
}

// SetOutputName sets the manifest file name. AutoOutputName derives it from
// the algorithm.
func (c *HashingConfig) SetOutputName(name string) *HashingConfig {
	c.outputName = name
	return c
}

// SetAlgorithm sets the digest algorithm.
func (c *HashingConfig) SetAlgorithm(a hashengines.Algorithm) *HashingConfig {
	c.algorithm = a
	return c
}

// SetFullLoadLimit sets the largest file size read into memory at once.
func (c *HashingConfig) SetFullLoadLimit(limit int64) *HashingConfig {
	c.fullLoadLimit = limit
	return c
}

// SetWorkers sets the number of files hashed concurrently.
func (c *HashingConfig) SetWorkers(n int) *HashingConfig {
	c.workers = n
	return c
}

// SetIgnoredPaths replaces the ignore list. Relative entries are resolved
// against the source directory. With ignoreGitPaths, .git and related files
// are ignored too.
func (c *HashingConfig) SetIgnoredPaths(paths []string, ignoreGitPaths bool) *HashingConfig {
	c.ignoredPaths = append([]string(nil), paths...)
	c.ignoreGit = ignoreGitPaths
	return c
}

// AddIgnoredPaths appends to the ignore list.
func (c *HashingConfig) AddIgnoredPaths(paths ...string) *HashingConfig {
	c.ignoredPaths = append(c.ignoredPaths, paths...)
	return c
}

// SetLogger sets the logger used during Hash.
func (c *HashingConfig) SetLogger(l logging.Logger) *HashingConfig {
	c.logger = logging.EnsureLogger(l)
	return c
}

// Source returns the directory to scan.
func (c *HashingConfig) Source() string {
	return c.source
}

// OutputDir returns the directory the manifest is written to.
func (c *HashingConfig) OutputDir() string {
	return c.outputDir
}

// Algorithm returns the configured digest algorithm.
func (c *HashingConfig) Algorithm() hashengines.Algorithm {
	return c.algorithm
}

// FullLoadLimit returns the largest file size, in bytes, read in one piece.
func (c *HashingConfig) FullLoadLimit() int64 {
	return c.fullLoadLimit
}

// Workers returns the number of files hashed concurrently.
func (c *HashingConfig) Workers() int {
	return c.workers
}

// ManifestName returns the manifest file name, resolving AutoOutputName.
func (c *HashingConfig) ManifestName() string {
	if c.outputName == "" || strings.EqualFold(c.outputName, AutoOutputName) {
		return "CRC." + c.algorithm.Extension()
	}
	return c.outputName
}

// ManifestPath returns the full path of the manifest file.
func (c *HashingConfig) ManifestPath() string {
	return filepath.Join(c.outputDir, c.ManifestName())
}

// IgnoredPaths returns the effective ignore list with relative entries
// resolved against the source directory.
func (c *HashingConfig) IgnoredPaths() []string {
	paths := append([]string(nil), c.ignoredPaths...)
	if c.ignoreGit {
		paths = append(paths, gitRelatedPaths...)
	}
	for i, p := range paths {
		if p != "" && !filepath.IsAbs(p) {
			paths[i] = filepath.Join(c.source, p)
		}
	}
	return paths
}

// Validate checks every value that can make a run fail before any file is
// read.
func (c *HashingConfig) Validate() error {
	var errs []error
	if c.source == "" {
		errs = append(errs, &ValidationError{Field: "source", Value: `""`, Reason: "must not be empty"})
	}
	if c.outputDir == "" {
		errs = append(errs, &ValidationError{Field: "output directory", Value: `""`, Reason: "must not be empty"})
	}
	if name := c.ManifestName(); strings.ContainsAny(name, `/\`) {
		errs = append(errs, &ValidationError{Field: "output name", Value: name, Reason: "must be a file name, not a path"})
	}
	if !c.algorithm.Valid() {
		errs = append(errs, &ValidationError{Field: "algorithm", Value: int(c.algorithm), Reason: "unknown algorithm"})
	}
	if c.fullLoadLimit < 0 {
		errs = append(errs, &ValidationError{Field: "full-load limit", Value: c.fullLoadLimit, Reason: "must not be negative"})
	}
	if c.workers <= 0 {
		errs = append(errs, &ValidationError{Field: "thread count", Value: c.workers, Reason: "must be positive"})
	}
	return errors.Join(errs...)
}

// Hash scans the source directory and hashes every file. The output
// directory is created first so that the manifest file, if it already
// exists, can be excluded from the scan. progress may be nil.
//
// Only configuration and traversal problems are returned as errors;
// per-file failures are recorded in the manifest.
func (c *HashingConfig) Hash(ctx context.Context, progress Progress) (*manifest.Manifest, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var m *manifest.Manifest
	err := tracing.Run(ctx, "newcrc.run", map[string]interface{}{
		"source":          c.source,
		"algorithm":       c.algorithm.String(),
		"full_load_limit": c.fullLoadLimit,
		"workers":         c.workers,
	}, func(ctx context.Context) error {
		if err := serialization.CheckSourceRoot(c.source); err != nil {
			return err
		}
		if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", c.outputDir, err)
		}

		files, err := serialization.NewCollector(c.ManifestPath(), c.IgnoredPaths(), c.logger).Collect(ctx, c.source)
		if err != nil {
			return err
		}
		c.logger.Info("hashing %d files with %s using %d workers", len(files), c.algorithm.DisplayName(), c.workers)

		hasher, err := hashio.NewFileHasher(c.algorithm, c.fullLoadLimit, hashengines.NewTables())
		if err != nil {
			return err
		}

		var observer serialization.Observer
		if progress != nil {
			progress.Begin(len(files))
			observer = progress
		}

		start := time.Now()
		results := serialization.NewPipeline(hasher, c.workers, observer).Run(ctx, files)
		elapsed := time.Since(start)

		if progress != nil {
			progress.Finish()
		}

		c.logResults(results)
		m = manifest.Build(c.source, results, elapsed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (c *HashingConfig) logResults(results []hashio.Result) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			c.logger.WithField("path", r.Path).Debug("hash failed: %v", r.Err)
		case r.SizeDrift():
			c.logger.WithFields(map[string]interface{}{
				"path":       r.Path,
				"size":       r.Size,
				"bytes_read": r.BytesRead,
			}).Warn("file changed while it was being hashed")
		case c.logger.Enabled(logging.LevelDebug):
			c.logger.WithFields(map[string]interface{}{
				"path":     r.Path,
				"strategy": r.Strategy.String(),
				"size":     r.Size,
			}).Debug("hashed")
		}
	}
}
