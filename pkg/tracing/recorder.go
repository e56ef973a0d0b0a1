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

package tracing

import (
	"context"
	"sync"
)

// RecordedSpan is a finished span captured by a Recorder.
type RecordedSpan struct {
	Name       string
	Attributes map[string]interface{}
	Err        error
}

// Recorder is an in-memory Tracer that keeps every ended span in end order.
type Recorder struct {
	mu    sync.Mutex
	spans []RecordedSpan
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start returns ctx unchanged and a span that is recorded when it ends.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, Span) {
	return ctx, &recordingSpan{rec: r, span: RecordedSpan{Name: name, Attributes: map[string]interface{}{}}}
}

// Spans returns a copy of the ended spans.
func (r *Recorder) Spans() []RecordedSpan {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedSpan, len(r.spans))
	copy(out, r.spans)
	return out
}

// Find returns the first ended span called name.
func (r *Recorder) Find(name string) (RecordedSpan, bool) {
	for _, s := range r.Spans() {
		if s.Name == name {
			return s, true
		}
	}
	return RecordedSpan{}, false
}

type recordingSpan struct {
	mu    sync.Mutex
	rec   *Recorder
	span  RecordedSpan
	ended bool
}

func (s *recordingSpan) SetAttribute(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.span.Attributes[key] = value
}

func (s *recordingSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.span.Err = err
}

func (s *recordingSpan) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	span := s.span
	s.mu.Unlock()

	s.rec.mu.Lock()
	s.rec.spans = append(s.rec.spans, span)
	s.rec.mu.Unlock()
}
