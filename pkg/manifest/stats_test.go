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
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
)

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0.00 B"},
		{10, "10.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{5 * 1024 * 1024, "5.00 MiB"},
		{500*1024*1024 + 5*1024*1024 + 10, "505.00 MiB"},
		{3 << 30, "3.00 GiB"},
		{1 << 40, "1.00 TiB"},
		{1 << 50, "1.00 PiB"},
		{1 << 60, "1024.00 PiB"},
	}
	for _, tt := range tests {
		if got := HumanBytes(tt.in); got != tt.want {
			t.Errorf("HumanBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStats_Add(t *testing.T) {
	var s Stats
	s.Add(hashio.Result{Size: 10})
	s.Add(hashio.Result{Size: 90})
	s.Add(hashio.Result{Size: 1000, Err: errors.New("boom")})

	if s.Files != 3 || s.Errors != 1 || s.TotalBytes != 100 {
		t.Errorf("Stats = %+v, want 3 files, 1 error, 100 bytes", s)
	}
}

func TestStats_Throughput(t *testing.T) {
	tests := []struct {
		name   string
		stats  Stats
		want   float64
		wantOk bool
	}{
		{"no files", Stats{Elapsed: time.Second}, 0, false},
		{"zero elapsed", Stats{Files: 2, TotalBytes: 100}, 0, false},
		{"normal", Stats{Files: 1, TotalBytes: 2048, Elapsed: 2 * time.Second}, 1024, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.stats.Throughput()
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("Throughput() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestStats_Report(t *testing.T) {
	s := Stats{Files: 3, Errors: 1, TotalBytes: 5 * 1024 * 1024, Elapsed: 2500 * time.Millisecond}

	var buf bytes.Buffer
	if err := s.Report(&buf); err != nil {
		t.Fatal(err)
	}
	want := "=== Statistics ===\n" +
		"Files processed : 3\n" +
		"Errors          : 1\n" +
		"Total volume    : 5.00 MiB\n" +
		"Elapsed time    : 2.50 s\n" +
		"Average speed   : 2.00 MiB/s\n"
	if got := buf.String(); got != want {
		t.Errorf("Report() =\n%s\nwant\n%s", got, want)
	}
}

func TestStats_ReportEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	if err := (Stats{}).Report(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Files processed : 0\n") {
		t.Errorf("report = %q", out)
	}
	if !strings.Contains(out, "Average speed   : N/A\n") {
		t.Errorf("throughput should be N/A, report = %q", out)
	}
}
