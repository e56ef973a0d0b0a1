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

// Package io hashes individual files, choosing between a full in-memory
// read and a bounded-memory streaming read per file.
package io

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Luxuse/NewCrc/pkg/hashing/digests"
	hashengines "github.com/Luxuse/NewCrc/pkg/hashing/engines"
)

// Result is the outcome of hashing one file.
type Result struct {
	// Path is the path exactly as it was handed to Hash.
	Path string
	// Digest is the file digest; zero when Err is set.
	Digest digests.Digest
	// Size is the file size observed before reading. It is the byte count
	// reported for the file.
	Size int64
	// BytesRead is the number of bytes actually fed to the engine. It differs
	// from Size only when the file changed while it was being hashed.
	BytesRead int64
	// Strategy is the read strategy that was selected.
	Strategy Strategy
	// Err is set when the file could not be hashed.
	Err error
}

// Ok reports whether the file was hashed successfully.
func (r Result) Ok() bool {
	return r.Err == nil
}

// SizeDrift reports whether the file size changed between the metadata
// lookup and the end of the read.
func (r Result) SizeDrift() bool {
	return r.Err == nil && r.BytesRead != r.Size
}

// FileHasher hashes files with one algorithm. It holds no per-file state and
// is safe for concurrent use.
type FileHasher struct {
	algorithm hashengines.Algorithm
	limit     int64
	tables    *hashengines.Tables
	buffers   sync.Pool
}

// NewFileHasher constructs a FileHasher.
//
//   - algorithm: digest algorithm for every file
//   - fullLoadLimit: files of at most this many bytes are read in one piece
//   - tables: shared lookup tables; nil builds a private set
func NewFileHasher(algorithm hashengines.Algorithm, fullLoadLimit int64, tables *hashengines.Tables) (*FileHasher, error) {
	if !algorithm.Valid() {
		return nil, fmt.Errorf("unsupported hash algorithm: %v", algorithm)
	}
	if fullLoadLimit < 0 {
		return nil, fmt.Errorf("full-load limit must be non-negative, got %d", fullLoadLimit)
	}
	if tables == nil {
		tables = hashengines.NewTables()
	}

	h := &FileHasher{
		algorithm: algorithm,
		limit:     fullLoadLimit,
		tables:    tables,
	}
	h.buffers.New = func() any {
		buf := make([]byte, BufferSize)
		return &buf
	}
	return h, nil
}

// Algorithm returns the configured algorithm.
func (h *FileHasher) Algorithm() hashengines.Algorithm {
	return h.algorithm
}

// FullLoadLimit returns the configured full-load threshold in bytes.
func (h *FileHasher) FullLoadLimit() int64 {
	return h.limit
}

// Hash computes the digest of the file at path. Failures are reported in
// Result.Err and never panic.
func (h *FileHasher) Hash(path string) Result {
	res := Result{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		res.Err = err
		return res
	}
	if !info.Mode().IsRegular() {
		res.Err = fmt.Errorf("%s is not a regular file", path)
		return res
	}
	res.Size = info.Size()

	strategy, err := SelectStrategy(res.Size, h.limit, h.algorithm)
	res.Strategy = strategy
	if err != nil {
		res.Err = err
		return res
	}

	f, err := os.Open(path)
	if err != nil {
		res.Err = err
		return res
	}
	//nolint:errcheck
	defer f.Close()

	switch strategy {
	case FullLoad:
		res.Digest, res.BytesRead, err = h.hashFull(f, res.Size)
	default:
		res.Digest, res.BytesRead, err = h.hashStream(f)
	}
	if err != nil {
		res.Err = err
		res.Digest = digests.Digest{}
	}
	return res
}

// hashFull reads the whole file into a buffer sized from the metadata.
func (h *FileHasher) hashFull(f *os.File, size int64) (digests.Digest, int64, error) {
	buf := bytes.NewBuffer(make([]byte, 0, int(size)+bytes.MinRead))
	n, err := buf.ReadFrom(f)
	if err != nil {
		return digests.Digest{}, n, err
	}
	d, err := hashengines.Sum(h.algorithm, buf.Bytes())
	return d, n, err
}

// hashStream feeds the file to a Stream one BufferSize chunk at a time.
func (h *FileHasher) hashStream(f *os.File) (digests.Digest, int64, error) {
	stream, err := hashengines.NewStream(h.algorithm, h.tables)
	if err != nil {
		return digests.Digest{}, 0, err
	}

	bp := h.buffers.Get().(*[]byte)
	defer h.buffers.Put(bp)
	buf := *bp

	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			stream.Update(buf[:n])
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			return digests.Digest{}, stream.Len(), rerr
		}
	}

	d, err := stream.Finalize()
	return d, stream.Len(), err
}
