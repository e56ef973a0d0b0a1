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

package serialization

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Luxuse/NewCrc/pkg/logging"
	"github.com/Luxuse/NewCrc/pkg/tracing"
)

// Collector lists the regular files below a source root.
type Collector struct {
	exclude     string
	excludeName string
	ignorePaths []string
	logger      logging.Logger
}

// NewCollector creates a Collector.
//
//   - exclude: a single file never returned, typically the manifest being
//     written; compared by canonical path. Empty disables the check.
//   - ignorePaths: files or directories whose subtrees are skipped
//   - logger: receives a warning for every entry that cannot be read
func NewCollector(exclude string, ignorePaths []string, logger logging.Logger) *Collector {
	c := &Collector{
		ignorePaths: ignorePaths,
		logger:      logging.EnsureLogger(logger),
	}
	if exclude != "" {
		c.exclude = CanonicalPath(exclude)
		c.excludeName = filepath.Base(c.exclude)
	}
	return c
}

// Collect walks root and returns every regular file in WalkDir order, which
// is lexical within each directory. A symlinked root is followed; symlinks
// and other special files below it are neither followed nor returned.
// Returned paths always start with root as given. Errors on individual
// entries are logged and skipped; only a failure to read root itself is
// returned.
func (c *Collector) Collect(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := tracing.Run(ctx, "newcrc.collect", map[string]interface{}{"root": root}, func(context.Context) error {
		if err := CheckSourceRoot(root); err != nil {
			return err
		}

		start := walkStart(root)
		return filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == start {
					return err
				}
				c.logger.Warn("skipping %s: %v", path, err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if path != start && ShouldIgnore(path, c.ignorePaths) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}
			if c.exclude != "" && d.Name() == c.excludeName && SamePath(path, c.exclude) {
				c.logger.Debug("excluding output file %s", path)
				return nil
			}

			files = append(files, path)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// walkStart returns the path WalkDir should start from so that a symlinked
// root is descended into. A trailing separator makes the initial Lstat
// resolve the link, while the entries below are still joined onto root.
func walkStart(root string) string {
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return root
	}
	if os.IsPathSeparator(root[len(root)-1]) {
		return root
	}
	return root + string(filepath.Separator)
}
