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
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/spf13/pflag"

	hashengines "github.com/Luxuse/NewCrc/pkg/hashing/engines"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeySource, DefaultSource, "")
	fs.String(KeyOutputDir, DefaultOutputDir, "")
	fs.String(KeyName, DefaultOutputName, "")
	fs.Int64(KeyFullLoadLimit, 209715200, "")
	fs.Int(KeyThreads, runtime.NumCPU(), "")
	fs.String(KeyAlgo, "xxh3", "")
	fs.StringSlice(KeyIgnorePaths, nil, "")
	fs.Bool(KeyIgnoreGitPaths, false, "")
	return fs
}

func TestLoader_Defaults(t *testing.T) {
	s, err := NewLoader().Settings()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.IgnorePaths) != 0 {
		t.Errorf("IgnorePaths = %v, want none", s.IgnorePaths)
	}
	s.IgnorePaths = nil

	want := Settings{
		Source:        ".",
		OutputDir:     "Hashes",
		Name:          "checksums.txt",
		FullLoadLimit: 209715200,
		Threads:       runtime.NumCPU(),
		Algo:          "xxh3",
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("Settings() = %+v, want %+v", s, want)
	}
}

func TestLoader_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "newcrc.yaml")
	err := os.WriteFile(cfgFile, []byte("algo: sha256\nthreads: 2\nname: from-file.txt\nfull-load-limit: 4096\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("NEWCRC_THREADS", "6")
	t.Setenv("NEWCRC_OUTPUT_DIR", "env-out")
	t.Setenv("NEWCRC_IGNORE_PATHS", "a,b")

	fs := newFlagSet()
	if err := fs.Parse([]string{"--algo", "blake2b", "--source", "/data"}); err != nil {
		t.Fatal(err)
	}

	l := NewLoader()
	if err := l.BindFlags(fs); err != nil {
		t.Fatal(err)
	}
	if err := l.LoadFile(cfgFile); err != nil {
		t.Fatal(err)
	}
	s, err := l.Settings()
	if err != nil {
		t.Fatal(err)
	}

	if s.Algo != "blake2b" {
		t.Errorf("Algo = %q, want flag value blake2b", s.Algo)
	}
	if s.Source != "/data" {
		t.Errorf("Source = %q, want flag value /data", s.Source)
	}
	if s.Threads != 6 {
		t.Errorf("Threads = %d, want env value 6", s.Threads)
	}
	if s.OutputDir != "env-out" {
		t.Errorf("OutputDir = %q, want env value", s.OutputDir)
	}
	if s.Name != "from-file.txt" || s.FullLoadLimit != 4096 {
		t.Errorf("file values not applied: %+v", s)
	}

	cfg, err := s.HashingConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Algorithm() != hashengines.BLAKE2b {
		t.Errorf("Algorithm() = %v", cfg.Algorithm())
	}
	if got := cfg.IgnoredPaths(); len(got) != 2 || got[0] != filepath.Join("/data", "a") {
		t.Errorf("IgnoredPaths() = %v", got)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	if err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("LoadFile() on a missing file should fail")
	}
	if err := NewLoader().LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") = %v", err)
	}
}

func TestSettings_HashingConfigErrors(t *testing.T) {
	base := Settings{Source: ".", OutputDir: "Hashes", Name: "auto", FullLoadLimit: 1, Threads: 1, Algo: "xxh3"}

	bad := base
	bad.Algo = "md5"
	_, err := bad.HashingConfig()
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "algorithm" {
		t.Errorf("HashingConfig() = %v, want algorithm ValidationError", err)
	}

	bad = base
	bad.Threads = 0
	if _, err := bad.HashingConfig(); !errors.As(err, &verr) || verr.Field != "thread count" {
		t.Errorf("HashingConfig() = %v, want thread count ValidationError", err)
	}

	cfg, err := base.HashingConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ManifestName() != "CRC.xxhash3" {
		t.Errorf("ManifestName() = %q", cfg.ManifestName())
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"a, b", "", "c"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList() = %v, want %v", got, want)
	}
}
