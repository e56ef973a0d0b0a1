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

package options

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Luxuse/NewCrc/pkg/config"
	hashengines "github.com/Luxuse/NewCrc/pkg/hashing/engines"
	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
)

// FlagAdder is implemented by any flag group that can register itself to a
// cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// AddAllFlags registers several flag groups at once.
func AddAllFlags(cmd *cobra.Command, flagGroups ...FlagAdder) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}

// SourceFlags select what is scanned.
type SourceFlags struct {
	// Source is the directory to scan.
	Source string
	// IgnorePaths lists files or directories to skip.
	IgnorePaths []string
	// IgnoreGitPaths skips .git and related files.
	IgnoreGitPaths bool
}

// AddFlags adds the source flags.
func (o *SourceFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Source, config.KeySource, "s", config.DefaultSource, "Directory to scan.")
	_ = cmd.MarkFlagDirname(config.KeySource)
	cmd.Flags().StringSliceVar(&o.IgnorePaths, config.KeyIgnorePaths, nil,
		"Files or directories to skip; relative paths are taken from --source.")
	cmd.Flags().BoolVar(&o.IgnoreGitPaths, config.KeyIgnoreGitPaths, false, "Skip .git and related files.")
}

// OutputFlags select where the manifest goes.
type OutputFlags struct {
	// OutputDir receives the manifest and is created if needed.
	OutputDir string
	// Name is the manifest file name or "auto".
	Name string
}

// AddFlags adds the output flags.
func (o *OutputFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.OutputDir, config.KeyOutputDir, "o", config.DefaultOutputDir,
		"Directory the manifest is written to.")
	_ = cmd.MarkFlagDirname(config.KeyOutputDir)
	cmd.Flags().StringVarP(&o.Name, config.KeyName, "n", config.DefaultOutputName,
		`Manifest file name; "auto" picks CRC.<ext> for the algorithm.`)
}

// EngineFlags select how files are hashed.
type EngineFlags struct {
	// Algo is the digest algorithm name.
	Algo string
	// FullLoadLimit is the largest file read in one piece.
	FullLoadLimit int64
	// Threads is the number of files hashed concurrently.
	Threads int
}

// AddFlags adds the engine flags.
func (o *EngineFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Algo, config.KeyAlgo, "a", hashengines.DefaultAlgorithm.String(),
		"Digest algorithm: "+strings.Join(hashengines.SupportedAlgorithms(), ", ")+".")
	_ = cmd.RegisterFlagCompletionFunc(config.KeyAlgo,
		cobra.FixedCompletions(hashengines.SupportedAlgorithms(), cobra.ShellCompDirectiveNoFileComp))
	cmd.Flags().Int64Var(&o.FullLoadLimit, config.KeyFullLoadLimit, hashio.DefaultFullLoadLimit,
		"Files up to this many bytes are read in one piece; larger files are streamed.")
	cmd.Flags().IntVarP(&o.Threads, config.KeyThreads, "t", runtime.NumCPU(), "Number of files hashed in parallel.")
}

// HashOptions is the complete flag set of the hash command.
type HashOptions struct {
	SourceFlags
	OutputFlags
	EngineFlags

	// ConfigFile is an optional yaml, json or toml settings file.
	ConfigFile string
	// NoProgress disables the progress bar.
	NoProgress bool
}

var _ FlagAdder = (*HashOptions)(nil)

// AddFlags adds every hash flag.
func (o *HashOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.SourceFlags, &o.OutputFlags, &o.EngineFlags)

	cmd.Flags().StringVar(&o.ConfigFile, "config", "", "Settings file (yaml, json or toml).")
	_ = cmd.MarkFlagFilename("config", "yaml", "yml", "json", "toml")
	cmd.Flags().BoolVar(&o.NoProgress, "no-progress", false, "Do not draw a progress bar.")
}

// HashingConfig merges flags with NEWCRC_* variables, the config file and
// defaults, and validates the result. fs may lack some or all hash flags,
// as when newcrc runs without a subcommand.
func (o *HashOptions) HashingConfig(fs *pflag.FlagSet) (*config.HashingConfig, error) {
	loader := config.NewLoader()
	if err := loader.BindFlags(fs); err != nil {
		return nil, err
	}
	if err := loader.LoadFile(o.ConfigFile); err != nil {
		return nil, err
	}
	settings, err := loader.Settings()
	if err != nil {
		return nil, err
	}
	return settings.HashingConfig()
}
