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
	"errors"
	"path/filepath"
	"testing"

	"github.com/Luxuse/NewCrc/pkg/hashing/digests"
	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
)

func TestEntry_Line(t *testing.T) {
	root := filepath.FromSlash("/data/src")
	d := digests.FromUint32("crc32c", 0xe3069283)

	tests := []struct {
		name   string
		result hashio.Result
		want   string
	}{
		{
			name:   "top level file",
			result: hashio.Result{Path: filepath.Join(root, "a.txt"), Digest: d, Size: 9},
			want:   "e3069283 *..\\a.txt\n",
		},
		{
			name:   "nested file uses backslashes",
			result: hashio.Result{Path: filepath.Join(root, "dir", "sub", "b.bin"), Digest: d, Size: 9},
			want:   "e3069283 *..\\dir\\sub\\b.bin\n",
		},
		{
			name:   "path outside root is kept",
			result: hashio.Result{Path: filepath.FromSlash("/elsewhere/c"), Digest: d},
			want:   "e3069283 *..\\" + backslashed(filepath.FromSlash("/elsewhere/c")) + "\n",
		},
		{
			name:   "error line uses the raw path",
			result: hashio.Result{Path: filepath.Join(root, "locked"), Err: errors.New("permission denied")},
			want:   "[ERROR] " + filepath.Join(root, "locked") + ": permission denied\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewEntry(root, tt.result).Line(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewEntry_FailedFileHasNoSize(t *testing.T) {
	e := NewEntry("/r", hashio.Result{Path: "/r/x", Size: 100, Err: errors.New("short read")})
	if e.Ok() || e.Size != 0 {
		t.Errorf("entry = %+v, want failed entry with zero size", e)
	}
}

func TestNewEntry_RelativeRoot(t *testing.T) {
	// WalkDir(".") yields paths without a "./" prefix.
	e := NewEntry(".", hashio.Result{Path: filepath.Join("sub", "f.txt"), Digest: digests.FromUint32("crc32", 1)})
	if e.Rel != `sub\f.txt` {
		t.Errorf("Rel = %q, want %q", e.Rel, `sub\f.txt`)
	}
}
