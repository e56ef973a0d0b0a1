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

// Package manifest turns ordered hash results into checksum manifest lines
// and run statistics.
//
// A manifest has exactly one line per hashed file, in the order the files
// were handed to the pipeline:
//
//	<hex-digest> *..\<relative\path>
//	[ERROR] <path>: <message>
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
)

// Manifest is the folded outcome of a run.
type Manifest struct {
	root    string
	entries []Entry
	stats   Stats
}

// Build folds results, which must be in input order, into a Manifest.
// Relative paths are computed against root.
func Build(root string, results []hashio.Result, elapsed time.Duration) *Manifest {
	m := &Manifest{
		root:    root,
		entries: make([]Entry, len(results)),
		stats:   Stats{Elapsed: elapsed},
	}
	for i, r := range results {
		m.entries[i] = NewEntry(root, r)
		m.stats.Add(r)
	}
	return m
}

// Root returns the source root the entries are relative to.
func (m *Manifest) Root() string {
	return m.root
}

// Entries returns a copy of the entries in order.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Stats returns the aggregated statistics.
func (m *Manifest) Stats() Stats {
	return m.stats
}

// Failed returns the entries that record an error.
func (m *Manifest) Failed() []Entry {
	var out []Entry
	for _, e := range m.entries {
		if !e.Ok() {
			out = append(out, e)
		}
	}
	return out
}

// WriteTo writes every line to w. It implements io.WriterTo.
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range m.entries {
		n, err := io.WriteString(w, e.Line())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteFile writes m to path, replacing any existing file. The parent
// directory must exist. An empty manifest produces an empty file.
func WriteFile(path string, m *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	if _, err := m.WriteTo(bw); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close manifest %s: %w", path, err)
	}
	return nil
}
