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
	"fmt"
	"math"

	"github.com/klauspost/crc32"
	"github.com/zeebo/xxh3"
	"github.com/zhenjl/cityhash"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"

	"github.com/Luxuse/NewCrc/pkg/hashing/digests"
	"github.com/Luxuse/NewCrc/pkg/hashing/engines/crc32c"
)

// Tables holds the read-only lookup tables shared by every Stream. A Tables
// value is never mutated after NewTables returns, so one instance can be
// used from any number of goroutines.
type Tables struct {
	castagnoli *crc32c.Table
}

// NewTables builds the lookup tables used by the streaming engines.
func NewTables() *Tables {
	return &Tables{castagnoli: crc32c.MakeTable(crc32c.Castagnoli)}
}

// Castagnoli returns the CRC-32C table.
func (t *Tables) Castagnoli() *crc32c.Table {
	return t.castagnoli
}

var castagnoliTable = crc32.MakeTable(crc32.Castagnoli)

// Sum computes the digest of a complete in-memory buffer.
//
// This is the full-load path; it is available for every algorithm, including
// those that cannot stream.
func Sum(a Algorithm, data []byte) (digests.Digest, error) {
	name := a.String()
	switch a {
	case CRC32:
		return digests.FromUint32(name, crc32.ChecksumIEEE(data)), nil
	case CRC32C:
		return digests.FromUint32(name, crc32.Checksum(data, castagnoliTable)), nil
	case City128:
		if uint64(len(data)) > math.MaxUint32 {
			return digests.Digest{}, fmt.Errorf("%s input of %d bytes exceeds the 4 GiB limit", a.DisplayName(), len(data))
		}
		h := cityhash.CityHash128(data, uint32(len(data)))
		return digests.FromUint128(name, h.Higher64(), h.Lower64()), nil
	case XXH3:
		return digests.FromUint64(name, xxh3.Hash(data)), nil
	case SHA256:
		sum := sha256.Sum256(data)
		return digests.NewDigest(name, sum[:]), nil
	case SHA512:
		sum := sha512.Sum512(data)
		return digests.NewDigest(name, sum[:]), nil
	case BLAKE2b:
		sum := blake2b.Sum512(data)
		return digests.NewDigest(name, sum[:]), nil
	case BLAKE2s:
		sum := blake2s.Sum256(data)
		return digests.NewDigest(name, sum[:]), nil
	default:
		return digests.Digest{}, fmt.Errorf("unsupported hash algorithm: %v", a)
	}
}
