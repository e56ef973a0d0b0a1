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

package hashengines

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"

	"github.com/klauspost/crc32"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"

	"github.com/Luxuse/NewCrc/pkg/hashing/digests"
	"github.com/Luxuse/NewCrc/pkg/hashing/engines/crc32c"
)

var (
	// ErrStreamingUnsupported is returned when a Stream is requested for an
	// algorithm that can only hash a full buffer.
	ErrStreamingUnsupported = errors.New("streaming not supported for this algorithm")

	// ErrFinalized is returned by Finalize when called on a consumed Stream.
	ErrFinalized = errors.New("stream already finalized")
)

// Stream is the incremental hashing state for one file.
//
// It is a tagged union: algo selects which of the payload fields is live.
// A Stream must not be shared between goroutines and must not be reused
// after Finalize.
type Stream struct {
	algo Algorithm
	done bool

	// CRC32
	crc uint32

	// CRC32C
	castagnoli *crc32c.Digest

	// XXH3
	xxh *xxh3.Hasher

	// SHA-256, SHA-512, BLAKE2b, BLAKE2s
	h hash.Hash

	n int64
}

// NewStream returns a fresh Stream for a. The tables must come from
// NewTables; they are only read.
func NewStream(a Algorithm, tables *Tables) (*Stream, error) {
	s := &Stream{algo: a}
	switch a {
	case CRC32:
		s.crc = 0
	case CRC32C:
		if tables == nil {
			return nil, fmt.Errorf("crc32c stream requires lookup tables")
		}
		s.castagnoli = crc32c.New(tables.Castagnoli())
	case XXH3:
		s.xxh = xxh3.New()
	case SHA256:
		s.h = sha256.New()
	case SHA512:
		s.h = sha512.New()
	case BLAKE2b:
		h, err := blake2b.New512(nil)
		if err != nil {
			return nil, fmt.Errorf("create blake2b hasher: %w", err)
		}
		s.h = h
	case BLAKE2s:
		h, err := blake2s.New256(nil)
		if err != nil {
			return nil, fmt.Errorf("create blake2s hasher: %w", err)
		}
		s.h = h
	case City128:
		return nil, fmt.Errorf("%s: %w", a.DisplayName(), ErrStreamingUnsupported)
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %v", a)
	}
	return s, nil
}

// Algorithm returns the algorithm this stream computes.
func (s *Stream) Algorithm() Algorithm {
	return s.algo
}

// Len returns the number of bytes fed so far.
func (s *Stream) Len() int64 {
	return s.n
}

// Update feeds the next contiguous chunk of input. Calls after Finalize are
// ignored.
func (s *Stream) Update(p []byte) {
	if s.done || len(p) == 0 {
		return
	}
	s.n += int64(len(p))

	switch s.algo {
	case CRC32:
		s.crc = crc32.Update(s.crc, crc32.IEEETable, p)
	case CRC32C:
		_, _ = s.castagnoli.Write(p)
	case XXH3:
		_, _ = s.xxh.Write(p)
	default:
		// hash.Hash.Write never returns an error
		_, _ = s.h.Write(p)
	}
}

// Write implements io.Writer on top of Update.
func (s *Stream) Write(p []byte) (int, error) {
	if s.done {
		return 0, ErrFinalized
	}
	s.Update(p)
	return len(p), nil
}

// Finalize returns the digest of everything fed so far and releases the
// state. It can be called once; later calls return ErrFinalized.
func (s *Stream) Finalize() (digests.Digest, error) {
	if s.done {
		return digests.Digest{}, ErrFinalized
	}
	s.done = true

	name := s.algo.String()
	var d digests.Digest
	switch s.algo {
	case CRC32:
		d = digests.FromUint32(name, s.crc)
	case CRC32C:
		d = digests.FromUint32(name, s.castagnoli.Sum32())
	case XXH3:
		d = digests.FromUint64(name, s.xxh.Sum64())
	default:
		d = digests.NewDigest(name, s.h.Sum(nil))
	}

	s.xxh = nil
	s.h = nil
	s.castagnoli = nil
	return d, nil
}
