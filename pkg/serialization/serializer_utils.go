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
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CheckSourceRoot checks that root exists and is a directory. A symlinked
// root is accepted when it points at a directory; Collector descends into it.
func CheckSourceRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot use %q as source directory: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot use %q as source directory: not a directory", root)
	}
	return nil
}

// CanonicalPath returns the absolute, symlink-resolved form of path. When
// the path cannot be resolved (for instance because it does not exist yet)
// the absolute path is returned, and failing that the path itself.
func CanonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Clean(abs)
	}
	return path
}

// SamePath reports whether a and b name the same location after
// canonicalization.
func SamePath(a, b string) bool {
	return CanonicalPath(a) == CanonicalPath(b)
}

// ShouldIgnore determines if path lies at or below one of ignorePaths.
//
// If an entry in ignorePaths is a directory, all of its children are also
// ignored. Empty entries are skipped.
func ShouldIgnore(path string, ignorePaths []string) bool {
	if len(ignorePaths) == 0 {
		return false
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	for _, base := range ignorePaths {
		if base == "" {
			continue
		}

		absBase, err := filepath.Abs(base)
		if err != nil {
			continue
		}

		rel, err := filepath.Rel(absBase, absPath)
		if err != nil {
			continue
		}

		if rel == "." {
			return true
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
