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
	"time"

	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
)

// Stats aggregates a run.
type Stats struct {
	// Files counts every task, failed or not.
	Files int
	// Errors counts failed tasks.
	Errors int
	// TotalBytes sums the sizes of successfully hashed files.
	TotalBytes uint64
	// Elapsed is the wall time of the hashing phase.
	Elapsed time.Duration
}

// Add folds one result into s.
func (s *Stats) Add(r hashio.Result) {
	s.Files++
	if r.Err != nil {
		s.Errors++
		return
	}
	if r.Size > 0 {
		s.TotalBytes += uint64(r.Size)
	}
}

// Throughput returns bytes per second. ok is false when there is nothing to
// divide: no files, or no measurable elapsed time.
func (s Stats) Throughput() (bytesPerSec float64, ok bool) {
	if s.Files == 0 || s.Elapsed <= 0 {
		return 0, false
	}
	return float64(s.TotalBytes) / s.Elapsed.Seconds(), true
}

var byteUnits = [...]string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// HumanBytes formats n in base-1024 units with two decimals, e.g.
// "5.00 MiB". PiB is the largest unit.
func HumanBytes(n uint64) string {
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", v, byteUnits[i])
}
