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

// Package crc32c implements a table-driven, reflected CRC-32 for arbitrary
// polynomials, with the Castagnoli polynomial as the default.
//
// Tables are plain immutable values: build one with MakeTable, then share it
// between any number of goroutines. Nothing in this package keeps global
// state.
package crc32c

// Castagnoli is the reflected form of the CRC-32C polynomial 0x1EDC6F41.
const Castagnoli uint32 = 0x82F63B78

// Table is a 256-word lookup table for a reflected CRC-32 polynomial.
type Table [256]uint32

// MakeTable builds the lookup table for the reflected polynomial poly.
func MakeTable(poly uint32) *Table {
	t := new(Table)
	for i := range t {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 == 1 {
				c = (c >> 1) ^ poly
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return t
}

// Update feeds p through the raw register crc and returns the new register.
// No pre- or post-inversion is applied.
func Update(crc uint32, tab *Table, p []byte) uint32 {
	for _, b := range p {
		crc = (crc >> 8) ^ tab[byte(crc)^b]
	}
	return crc
}

// Digest is a streaming CRC accumulator. The zero value is not usable; create
// one with New.
type Digest struct {
	crc uint32
	tab *Table
}

// New returns a Digest whose register starts at all ones.
func New(tab *Table) *Digest {
	return &Digest{crc: ^uint32(0), tab: tab}
}

// Write adds p to the running checksum. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	d.crc = Update(d.crc, d.tab, p)
	return len(p), nil
}

// Sum32 returns the finalized checksum without changing the register.
func (d *Digest) Sum32() uint32 {
	return d.crc ^ 0xFFFFFFFF
}
