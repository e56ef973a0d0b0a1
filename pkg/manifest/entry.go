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

package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Luxuse/NewCrc/pkg/hashing/digests"
	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
)

// ErrorPrefix starts every line that records a failed file.
const ErrorPrefix = "[ERROR]"

// Entry is one manifest line.
type Entry struct {
	// Path is the file path as it was hashed.
	Path string
	// Rel is the path relative to the source root with backslash separators.
	Rel string
	// Digest is zero for failed files.
	Digest digests.Digest
	// Size is the byte count credited to the file.
	Size int64
	// Err is the per-file failure, if any.
	Err error
}

// NewEntry converts a hash result into a manifest entry. When the path does
// not lie below root it is kept unchanged.
func NewEntry(root string, r hashio.Result) Entry {
	e := Entry{
		Path:   r.Path,
		Rel:    backslashed(relativeTo(root, r.Path)),
		Digest: r.Digest,
		Err:    r.Err,
	}
	if r.Err == nil {
		e.Size = r.Size
	}
	return e
}

// Ok reports whether the entry is a digest line.
func (e Entry) Ok() bool {
	return e.Err == nil
}

// Line renders the entry including the trailing newline:
//
//	<hex> *..\<rel>
//	[ERROR] <path>: <message>
func (e Entry) Line() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v\n", ErrorPrefix, e.Path, e.Err)
	}
	return fmt.Sprintf("%s *..\\%s\n", e.Digest.Hex(), e.Rel)
}

func relativeTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func backslashed(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), "/", `\`)
}
