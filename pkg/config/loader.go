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
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	hashengines "github.com/Luxuse/NewCrc/pkg/hashing/engines"
	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
)

// EnvPrefix prefixes every environment override, e.g. NEWCRC_ALGO.
const EnvPrefix = "NEWCRC"

// Setting keys. They double as flag names and config file keys.
const (
	KeySource         = "source"
	KeyOutputDir      = "output-dir"
	KeyName           = "name"
	KeyFullLoadLimit  = "full-load-limit"
	KeyThreads        = "threads"
	KeyAlgo           = "algo"
	KeyIgnorePaths    = "ignore-paths"
	KeyIgnoreGitPaths = "ignore-git-paths"
)

// Settings is the raw, unvalidated form of a HashingConfig.
type Settings struct {
	Source         string   `mapstructure:"source"`
	OutputDir      string   `mapstructure:"output-dir"`
	Name           string   `mapstructure:"name"`
	FullLoadLimit  int64    `mapstructure:"full-load-limit"`
	Threads        int      `mapstructure:"threads"`
	Algo           string   `mapstructure:"algo"`
	IgnorePaths    []string `mapstructure:"ignore-paths"`
	IgnoreGitPaths bool     `mapstructure:"ignore-git-paths"`
}

// Loader layers settings from, highest precedence first: flags set on the
// command line, NEWCRC_* environment variables, a config file, and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader primed with the defaults.
func NewLoader() *Loader {
	v := viper.New()
	v.SetDefault(KeySource, DefaultSource)
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyName, DefaultOutputName)
	v.SetDefault(KeyFullLoadLimit, hashio.DefaultFullLoadLimit)
	v.SetDefault(KeyThreads, runtime.NumCPU())
	v.SetDefault(KeyAlgo, hashengines.DefaultAlgorithm.String())
	v.SetDefault(KeyIgnorePaths, []string{})
	v.SetDefault(KeyIgnoreGitPaths, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlags makes explicitly set flags override every other source. Flags
// that were not set fall back to env, file and defaults.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range []string{
		KeySource, KeyOutputDir, KeyName, KeyFullLoadLimit,
		KeyThreads, KeyAlgo, KeyIgnorePaths, KeyIgnoreGitPaths,
	} {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// LoadFile reads a yaml, json or toml config file. The format is taken from
// the extension. An empty path is a no-op.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	l.v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "yml" {
		l.v.SetConfigType("yaml")
	}
	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Settings returns the merged settings.
func (l *Loader) Settings() (Settings, error) {
	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return s, nil
}

// HashingConfig parses and validates s.
func (s Settings) HashingConfig() (*HashingConfig, error) {
	algo, err := hashengines.ParseAlgorithm(s.Algo)
	if err != nil {
		return nil, &ValidationError{Field: "algorithm", Value: s.Algo, Reason: err.Error()}
	}

	cfg := NewHashingConfig().
		SetSource(s.Source).
		SetOutputDir(s.OutputDir).
		SetOutputName(s.Name).
		SetAlgorithm(algo).
		SetFullLoadLimit(s.FullLoadLimit).
		SetWorkers(s.Threads).
		SetIgnoredPaths(splitList(s.IgnorePaths), s.IgnoreGitPaths)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList flattens comma-separated entries, which is how list values
// arrive from environment variables.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, p := range strings.Split(item, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
