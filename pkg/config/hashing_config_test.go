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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	hashengines "github.com/Luxuse/NewCrc/pkg/hashing/engines"
	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
)

func TestNewHashingConfig(t *testing.T) {
	config := NewHashingConfig()

	if config.Source() != "." {
		t.Errorf("Source() = %q, want %q", config.Source(), ".")
	}
	if config.OutputDir() != "Hashes" {
		t.Errorf("OutputDir() = %q, want %q", config.OutputDir(), "Hashes")
	}
	if config.ManifestName() != "checksums.txt" {
		t.Errorf("ManifestName() = %q, want %q", config.ManifestName(), "checksums.txt")
	}
	if config.Algorithm() != hashengines.XXH3 {
		t.Errorf("Algorithm() = %v, want xxh3", config.Algorithm())
	}
	if config.FullLoadLimit() != 209715200 {
		t.Errorf("FullLoadLimit() = %d, want 209715200", config.FullLoadLimit())
	}
	if config.Workers() != runtime.NumCPU() {
		t.Errorf("Workers() = %d, want %d", config.Workers(), runtime.NumCPU())
	}
	if err := config.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestManifestName_Auto(t *testing.T) {
	tests := []struct {
		algo hashengines.Algorithm
		want string
	}{
		{hashengines.CRC32, "CRC.crc32"},
		{hashengines.CRC32C, "CRC.crc32c"},
		{hashengines.City128, "CRC.city128"},
		{hashengines.XXH3, "CRC.xxhash3"},
		{hashengines.SHA256, "CRC.sha256"},
		{hashengines.SHA512, "CRC.sha512"},
		{hashengines.BLAKE2b, "CRC.blake2b"},
		{hashengines.BLAKE2s, "CRC.blake2s"},
	}
	for _, tt := range tests {
		config := NewHashingConfig().SetAlgorithm(tt.algo).SetOutputName("auto")
		if got := config.ManifestName(); got != tt.want {
			t.Errorf("ManifestName() for %v = %q, want %q", tt.algo, got, tt.want)
		}
	}

	config := NewHashingConfig().SetOutputDir("out").SetOutputName("AUTO").SetAlgorithm(hashengines.SHA256)
	if got, want := config.ManifestPath(), filepath.Join("out", "CRC.sha256"); got != want {
		t.Errorf("ManifestPath() = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config *HashingConfig
		field  string
	}{
		{"zero workers", NewHashingConfig().SetWorkers(0), "thread count"},
		{"negative limit", NewHashingConfig().SetFullLoadLimit(-1), "full-load limit"},
		{"empty source", NewHashingConfig().SetSource(""), "source"},
		{"empty output dir", NewHashingConfig().SetOutputDir(""), "output directory"},
		{"name with separator", NewHashingConfig().SetOutputName("a/b.txt"), "output name"},
		{"bad algorithm", NewHashingConfig().SetAlgorithm(hashengines.Algorithm(99)), "algorithm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}

	// Zero is a valid limit: every non-empty file streams.
	if err := NewHashingConfig().SetFullLoadLimit(0).Validate(); err != nil {
		t.Errorf("zero limit rejected: %v", err)
	}
}

func TestIgnoredPaths(t *testing.T) {
	source := filepath.FromSlash("/models/m1")
	abs := filepath.FromSlash("/tmp/elsewhere")

	config := NewHashingConfig().SetSource(source).SetIgnoredPaths([]string{"cache", abs}, false)
	got := config.IgnoredPaths()
	want := []string{filepath.Join(source, "cache"), abs}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("IgnoredPaths() = %v, want %v", got, want)
	}

	config.SetIgnoredPaths(nil, true)
	got = config.IgnoredPaths()
	if len(got) != len(gitRelatedPaths) || got[0] != filepath.Join(source, ".git") {
		t.Errorf("IgnoredPaths() with git = %v", got)
	}

	config.AddIgnoredPaths("logs")
	if got := config.IgnoredPaths(); got[0] != filepath.Join(source, "logs") {
		t.Errorf("AddIgnoredPaths() not applied: %v", got)
	}
}

type countingProgress struct {
	mu       sync.Mutex
	total    int
	done     int
	finished bool
}

func (p *countingProgress) Begin(total int) { p.total = total }

func (p *countingProgress) TaskDone(int, hashio.Result) {
	p.mu.Lock()
	p.done++
	p.mu.Unlock()
}

func (p *countingProgress) Finish() { p.finished = true }

func TestHash(t *testing.T) {
	source := t.TempDir()
	for name, content := range map[string]string{
		"a.txt":          "123456789",
		"sub/b.txt":      "hello",
		".git/HEAD":      "ref: refs/heads/main",
		"skip/ignored.x": "x",
	} {
		p := filepath.Join(source, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Output inside the source tree with a stale manifest that must not be
	// hashed.
	outDir := filepath.Join(source, "Hashes")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "CRC.crc32c"), []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	progress := &countingProgress{}
	m, err := NewHashingConfig().
		SetSource(source).
		SetOutputDir(outDir).
		SetOutputName(AutoOutputName).
		SetAlgorithm(hashengines.CRC32C).
		SetWorkers(2).
		SetIgnoredPaths([]string{"skip"}, true).
		Hash(context.Background(), progress)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	var lines []string
	for _, e := range m.Entries() {
		lines = append(lines, e.Line())
	}
	want := []string{
		"e3069283 *..\\a.txt\n",
		"9a71bb4c *..\\sub\\b.txt\n",
	}
	if strings.Join(lines, "") != strings.Join(want, "") {
		t.Errorf("lines = %q, want %q", lines, want)
	}

	if progress.total != 2 || progress.done != 2 || !progress.finished {
		t.Errorf("progress = %+v, want 2/2 finished", progress)
	}
	if s := m.Stats(); s.Files != 2 || s.TotalBytes != 14 {
		t.Errorf("stats = %+v", s)
	}
}

func TestHash_SymlinkedSource(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "tree")
	if err := os.MkdirAll(filepath.Join(target, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "a.txt"), []byte("123456789"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "sub", "b.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	m, err := NewHashingConfig().
		SetSource(link).
		SetOutputDir(filepath.Join(tmp, "Hashes")).
		SetAlgorithm(hashengines.CRC32C).
		Hash(context.Background(), nil)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	var lines []string
	for _, e := range m.Entries() {
		lines = append(lines, e.Line())
	}
	want := []string{
		"e3069283 *..\\a.txt\n",
		"9a71bb4c *..\\sub\\b.txt\n",
	}
	if strings.Join(lines, "") != strings.Join(want, "") {
		t.Errorf("lines = %q, want %q", lines, want)
	}
}

func TestHash_CreatesOutputDir(t *testing.T) {
	source := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "nested", "Hashes")

	m, err := NewHashingConfig().SetSource(source).SetOutputDir(outDir).Hash(context.Background(), nil)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("empty tree produced %d entries", m.Len())
	}
	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestHash_Errors(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		config *HashingConfig
	}{
		{"missing source", NewHashingConfig().SetSource(filepath.Join(tmp, "missing")).SetOutputDir(tmp)},
		{"source is a file", NewHashingConfig().SetSource(blocker).SetOutputDir(tmp)},
		{"output dir blocked by a file", NewHashingConfig().SetSource(tmp).SetOutputDir(filepath.Join(blocker, "out"))},
		{"invalid config", NewHashingConfig().SetSource(tmp).SetOutputDir(tmp).SetWorkers(-2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.config.Hash(context.Background(), nil); err == nil {
				t.Error("Hash() succeeded, want error")
			}
		})
	}
}

func TestMethodChaining(t *testing.T) {
	config := NewHashingConfig().
		SetSource("/src").
		SetOutputDir("/out").
		SetOutputName("sums.txt").
		SetAlgorithm(hashengines.BLAKE2s).
		SetFullLoadLimit(1024).
		SetWorkers(3).
		SetLogger(nil)

	if config.Source() != "/src" || config.OutputDir() != "/out" || config.ManifestName() != "sums.txt" {
		t.Errorf("paths not applied: %+v", config)
	}
	if config.Algorithm() != hashengines.BLAKE2s || config.FullLoadLimit() != 1024 || config.Workers() != 3 {
		t.Errorf("values not applied: %+v", config)
	}
	if config.logger == nil {
		t.Error("SetLogger(nil) left a nil logger")
	}
}
