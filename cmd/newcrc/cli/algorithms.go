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
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	hashengines "github.com/Luxuse/NewCrc/pkg/hashing/engines"
)

func Algorithms() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the supported digest algorithms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDISPLAY\tHEX WIDTH\tSTREAMING\tAUTO NAME")
			for _, a := range hashengines.Algorithms() {
				streaming := "yes"
				if !a.StreamingCapable() {
					streaming = "no (full-load only)"
				}
				def := ""
				if a == hashengines.DefaultAlgorithm {
					def = " (default)"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%d\t%s\tCRC.%s\n",
					a.String(), def, a.DisplayName(), a.HexWidth(), streaming, a.Extension())
			}
			return w.Flush()
		},
	}
}
