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
	"errors"
	"testing"
)

func TestAlgorithmProperties(t *testing.T) {
	tests := []struct {
		algo      Algorithm
		name      string
		streaming bool
		hexWidth  int
	}{
		{CRC32, "crc32", true, 8},
		{CRC32C, "crc32c", true, 8},
		{City128, "city128", false, 32},
		{XXH3, "xxh3", true, 16},
		{SHA256, "sha256", true, 64},
		{SHA512, "sha512", true, 128},
		{BLAKE2b, "blake2b", true, 128},
		{BLAKE2s, "blake2s", true, 64},
	}

	if len(tests) != len(Algorithms()) {
		t.Fatalf("Algorithms() has %d entries, test covers %d", len(Algorithms()), len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.algo.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.algo.StreamingCapable(); got != tt.streaming {
				t.Errorf("StreamingCapable() = %v, want %v", got, tt.streaming)
			}
			if got := tt.algo.HexWidth(); got != tt.hexWidth {
				t.Errorf("HexWidth() = %d, want %d", got, tt.hexWidth)
			}
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"xxh3", XXH3, false},
		{"XXHASH3", XXH3, false},
		{" sha256 ", SHA256, false},
		{"blake2b-512", BLAKE2b, false},
		{"Blake2s", BLAKE2s, false},
		{"cityhash128", City128, false},
		{"crc32c", CRC32C, false},
		{"md5", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAlgorithm_FlagValue(t *testing.T) {
	a := DefaultAlgorithm
	if err := a.Set("sha512"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if a != SHA512 {
		t.Errorf("after Set(\"sha512\") = %v, want sha512", a)
	}
	if err := a.Set("nope"); err == nil {
		t.Error("Set(\"nope\") succeeded, want error")
	}
	if a != SHA512 {
		t.Errorf("failed Set() changed value to %v", a)
	}
}

func TestNewStream_City128Unsupported(t *testing.T) {
	_, err := NewStream(City128, NewTables())
	if !errors.Is(err, ErrStreamingUnsupported) {
		t.Fatalf("NewStream(City128) error = %v, want ErrStreamingUnsupported", err)
	}
}
