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

// Package hashengines provides the digest algorithms supported by newcrc.
//
// The set of algorithms is closed: Algorithm enumerates every variant, and
// each variant reports whether it can be computed incrementally. Full-buffer
// digests are produced by Sum; incremental digests by a Stream obtained from
// NewStream.
package hashengines

import (
	"fmt"
	"strings"
)

// Algorithm identifies one of the supported digest algorithms.
type Algorithm int

const (
	// CRC32 is CRC-32/IEEE.
	CRC32 Algorithm = iota
	// CRC32C is CRC-32/Castagnoli.
	CRC32C
	// City128 is CityHash128. It can only be computed over a full buffer.
	City128
	// XXH3 is the 64-bit XXH3 hash.
	XXH3
	// SHA256 is SHA-256.
	SHA256
	// SHA512 is SHA-512.
	SHA512
	// BLAKE2b is BLAKE2b with a 512-bit digest.
	BLAKE2b
	// BLAKE2s is BLAKE2s with a 256-bit digest.
	BLAKE2s
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = XXH3

type algorithmInfo struct {
	name      string
	streaming bool
	size      int
	extension string
	aliases   []string
}

var algorithms = [...]algorithmInfo{
	CRC32:   {name: "crc32", streaming: true, size: 4, extension: "crc32"},
	CRC32C:  {name: "crc32c", streaming: true, size: 4, extension: "crc32c", aliases: []string{"castagnoli"}},
	City128: {name: "city128", streaming: false, size: 16, extension: "city128", aliases: []string{"cityhash128", "city"}},
	XXH3:    {name: "xxh3", streaming: true, size: 8, extension: "xxhash3", aliases: []string{"xxhash3", "xxh3-64"}},
	SHA256:  {name: "sha256", streaming: true, size: 32, extension: "sha256", aliases: []string{"sha-256"}},
	SHA512:  {name: "sha512", streaming: true, size: 64, extension: "sha512", aliases: []string{"sha-512"}},
	BLAKE2b: {name: "blake2b", streaming: true, size: 64, extension: "blake2b", aliases: []string{"blake2b-512", "blake2b512"}},
	BLAKE2s: {name: "blake2s", streaming: true, size: 32, extension: "blake2s", aliases: []string{"blake2s-256", "blake2s256"}},
}

// Algorithms returns every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(algorithms))
	for i := range algorithms {
		out[i] = Algorithm(i)
	}
	return out
}

// SupportedAlgorithms returns the canonical names of all algorithms.
func SupportedAlgorithms() []string {
	out := make([]string, len(algorithms))
	for i, info := range algorithms {
		out[i] = info.name
	}
	return out
}

// ParseAlgorithm resolves a canonical name or alias, ignoring case.
func ParseAlgorithm(s string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, info := range algorithms {
		if key == info.name {
			return Algorithm(i), nil
		}
		for _, alias := range info.aliases {
			if key == alias {
				return Algorithm(i), nil
			}
		}
	}
	return 0, fmt.Errorf("unsupported hash algorithm: %q (supported: %v)", s, SupportedAlgorithms())
}

// Valid reports whether a is one of the enumerated algorithms.
func (a Algorithm) Valid() bool {
	return a >= 0 && int(a) < len(algorithms)
}

// String returns the canonical lowercase name, e.g. "xxh3".
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithms[a].name
}

// DisplayName returns the name used in user-facing messages, e.g. "City128".
func (a Algorithm) DisplayName() string {
	switch a {
	case CRC32:
		return "CRC32"
	case CRC32C:
		return "CRC32C"
	case City128:
		return "City128"
	case XXH3:
		return "XXH3"
	case SHA256:
		return "SHA256"
	case SHA512:
		return "SHA512"
	case BLAKE2b:
		return "BLAKE2b-512"
	case BLAKE2s:
		return "BLAKE2s-256"
	default:
		return a.String()
	}
}

// StreamingCapable reports whether the algorithm can be fed incrementally.
func (a Algorithm) StreamingCapable() bool {
	return a.Valid() && algorithms[a].streaming
}

// DigestSize returns the digest length in bytes.
func (a Algorithm) DigestSize() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].size
}

// HexWidth returns the number of hex characters in a rendered digest.
func (a Algorithm) HexWidth() int {
	return 2 * a.DigestSize()
}

// Extension returns the manifest file extension traditionally used for the
// algorithm, e.g. "xxhash3" for XXH3.
func (a Algorithm) Extension() string {
	if !a.Valid() {
		return ""
	}
	return algorithms[a].extension
}

// Set implements pflag.Value so an Algorithm can be bound to a flag directly.
func (a *Algorithm) Set(s string) error {
	v, err := ParseAlgorithm(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Type implements pflag.Value.
func (a *Algorithm) Type() string {
	return "algorithm"
}
