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
	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/Luxuse/NewCrc/cmd/newcrc/cli/options"
)

var (
	ro = &options.RootOptions{}
)

// New returns the root command. Without a subcommand it runs hash with
// settings taken from the environment, an optional config file, and
// defaults.
func New() *cobra.Command {
	defaults := &options.HashOptions{}

	cmd := &cobra.Command{
		Use:   "newcrc",
		Short: "Checksum every file in a directory tree.",
		Long: `Checksum every file in a directory tree.

Running newcrc without a subcommand is the same as running "newcrc hash"
without flags: settings come from NEWCRC_* environment variables and
defaults. Use "newcrc hash --help" for all options.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHash(cmd, defaults)
		},
	}
	ro.AddFlags(cmd)

	cmd.AddCommand(Hash())
	cmd.AddCommand(Algorithms())
	cmd.AddCommand(version.WithFont("starwars"))
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}
