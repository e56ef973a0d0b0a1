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

// Package digests provides the value type produced by every hash engine.
//
// A Digest pairs the canonical algorithm name with the raw digest bytes. It is
// immutable: the bytes are copied on construction and on access.
package digests

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Digest is a computed file digest.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest creates a Digest for the named algorithm. The value slice is
// copied so later mutation by the caller cannot leak into the digest.
func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// FromUint32 renders a 32-bit checksum as a 4-byte big-endian digest, so that
// Hex prints it as 8 zero-padded lowercase digits.
func FromUint32(algorithm string, v uint32) Digest {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return Digest{algorithm: algorithm, value: b[:]}
}

// FromUint64 renders a 64-bit hash as an 8-byte big-endian digest.
func FromUint64(algorithm string, v uint64) Digest {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return Digest{algorithm: algorithm, value: b[:]}
}

// FromUint128 renders a 128-bit hash given as (high, low) halves. The high
// half is printed first.
func FromUint128(algorithm string, hi, lo uint64) Digest {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], hi)
	binary.BigEndian.PutUint64(b[8:], lo)
	return Digest{algorithm: algorithm, value: b[:]}
}

// Algorithm returns the canonical name of the algorithm that produced d.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Hex returns the digest as lowercase two-digit hex groups.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the digest length in bytes.
func (d Digest) Size() int {
	return len(d.value)
}

// IsZero reports whether d carries no value, as for a failed computation.
func (d Digest) IsZero() bool {
	return len(d.value) == 0
}

// String formats the digest as "algorithm:hex".
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether both digests have the same algorithm and value.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}
