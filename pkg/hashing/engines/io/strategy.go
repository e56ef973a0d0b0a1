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

package io

import (
	"fmt"

	hashengines "github.com/Luxuse/NewCrc/pkg/hashing/engines"
)

// DefaultFullLoadLimit is the largest file size, in bytes, that is read into
// memory in one piece (200 MiB).
const DefaultFullLoadLimit int64 = 200 * 1024 * 1024

// BufferSize is the read size used by the streaming strategy (1 MiB).
const BufferSize = 1024 * 1024

// Strategy selects how a file is fed to its hash engine.
type Strategy int

const (
	// FullLoad reads the whole file into one buffer and hashes it at once.
	FullLoad Strategy = iota
	// Streaming reads the file in BufferSize chunks through a Stream.
	Streaming
)

func (s Strategy) String() string {
	switch s {
	case FullLoad:
		return "full-load"
	case Streaming:
		return "streaming"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// StrategyError reports a file that the configured algorithm cannot hash
// within the memory bound.
type StrategyError struct {
	Algorithm hashengines.Algorithm
	Size      int64
	Limit     int64
	Cause     error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf(
		"%s does not support streaming; increase --full-load-limit (file is %d bytes, limit %d) or choose another algorithm",
		e.Algorithm.DisplayName(), e.Size, e.Limit,
	)
}

// Unwrap returns the underlying cause, normally
// hashengines.ErrStreamingUnsupported.
func (e *StrategyError) Unwrap() error {
	return e.Cause
}

// SelectStrategy chooses FullLoad for files of at most limit bytes and
// Streaming for anything larger. An algorithm that cannot stream is never
// silently loaded in full; it fails with a *StrategyError instead.
func SelectStrategy(size, limit int64, algo hashengines.Algorithm) (Strategy, error) {
	if size <= limit {
		return FullLoad, nil
	}
	if !algo.StreamingCapable() {
		return Streaming, &StrategyError{
			Algorithm: algo,
			Size:      size,
			Limit:     limit,
			Cause:     hashengines.ErrStreamingUnsupported,
		}
	}
	return Streaming, nil
}
