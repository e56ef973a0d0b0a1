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

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Luxuse/NewCrc/cmd/newcrc/cli/options"
	"github.com/Luxuse/NewCrc/pkg/config"
	"github.com/Luxuse/NewCrc/pkg/logging"
	"github.com/Luxuse/NewCrc/pkg/manifest"
	"github.com/Luxuse/NewCrc/pkg/progress"
)

// Exit codes returned through ExitCoder.
const (
	ExitConfig = 2
	ExitIO     = 3
)

type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func (e *exitError) ExitCode() int { return e.code }

func Hash() *cobra.Command {
	o := &options.HashOptions{}
	long := `Hash every regular file below --source and write one manifest line per file.

Files of at most --full-load-limit bytes are read into memory in one piece;
larger files are streamed in 1 MiB chunks. City128 cannot be streamed, so
files above the limit are reported as errors when it is selected.

Each line of the manifest is either

    <digest> *..\<relative\path>
    [ERROR] <path>: <message>

in directory traversal order. Settings can also be given as NEWCRC_*
environment variables (for example NEWCRC_ALGO=sha256) or in a yaml, json
or toml file passed with --config. Flags win over the environment, which
wins over the file.`

	cmd := &cobra.Command{
		Use:   "hash [OPTIONS]",
		Short: "Hash a directory tree into a checksum manifest.",
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHash(cmd, o)
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runHash(cmd *cobra.Command, o *options.HashOptions) error {
	obs := ro.NewObservability()

	cfg, err := o.HashingConfig(cmd.Flags())
	if err != nil {
		return &exitError{err: err, code: ExitConfig}
	}
	cfg.SetLogger(obs.Logger)

	var bar config.Progress
	if !o.NoProgress && ro.GetLogLevel() != logging.LevelSilent {
		bar = progress.New(cmd.ErrOrStderr())
	}

	m, err := cfg.Hash(cmd.Context(), bar)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			return &exitError{err: err, code: ExitConfig}
		}
		return &exitError{err: err, code: ExitIO}
	}

	path := cfg.ManifestPath()
	if err := manifest.WriteFile(path, m); err != nil {
		return &exitError{err: err, code: ExitIO}
	}

	if n := len(m.Failed()); n > 0 {
		obs.Logger.Warn("%d of %d files under %s could not be hashed; see the [ERROR] lines in %s", n, m.Len(), m.Root(), path)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nDone! Hashes saved to: %s\n", path)
	return m.Stats().Report(out)
}
