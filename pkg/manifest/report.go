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
	"io"
)

// NotAvailable is printed in place of a throughput that cannot be computed.
const NotAvailable = "N/A"

// ThroughputString renders Throughput as "<volume>/s" or NotAvailable.
func (s Stats) ThroughputString() string {
	bps, ok := s.Throughput()
	if !ok {
		return NotAvailable
	}
	return HumanBytes(uint64(bps)) + "/s"
}

// Report writes the statistics block.
func (s Stats) Report(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"=== Statistics ===\n"+
			"Files processed : %d\n"+
			"Errors          : %d\n"+
			"Total volume    : %s\n"+
			"Elapsed time    : %.2f s\n"+
			"Average speed   : %s\n",
		s.Files,
		s.Errors,
		HumanBytes(s.TotalBytes),
		s.Elapsed.Seconds(),
		s.ThroughputString(),
	)
	return err
}
