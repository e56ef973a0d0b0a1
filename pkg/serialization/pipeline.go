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

// Package serialization turns a source tree into an ordered list of per-file
// hash results: Collector lists the files, Pipeline hashes them in parallel.
package serialization

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
	"github.com/Luxuse/NewCrc/pkg/tracing"
)

// Hasher hashes a single file. *hashio.FileHasher implements it.
type Hasher interface {
	Hash(path string) hashio.Result
}

// Observer is told about every finished task, in completion order. It may be
// called from several goroutines at once.
type Observer interface {
	TaskDone(index int, result hashio.Result)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(index int, result hashio.Result)

// TaskDone calls f(index, result).
func (f ObserverFunc) TaskDone(index int, result hashio.Result) {
	f(index, result)
}

// Pipeline hashes many files on a bounded pool of goroutines and returns the
// results in input order.
type Pipeline struct {
	hasher   Hasher
	workers  int
	observer Observer
}

// NewPipeline creates a Pipeline. workers <= 0 selects runtime.NumCPU().
// observer may be nil.
func NewPipeline(hasher Hasher, workers int, observer Observer) *Pipeline {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{hasher: hasher, workers: workers, observer: observer}
}

// Workers returns the size of the goroutine pool.
func (p *Pipeline) Workers() int {
	return p.workers
}

// Run hashes every path and returns one result per path, where results[i]
// belongs to paths[i]. A failing file only sets its own Result.Err. Run does
// not stop early; ctx carries tracing only.
func (p *Pipeline) Run(ctx context.Context, paths []string) []hashio.Result {
	results := make([]hashio.Result, len(paths))

	_ = tracing.Run(ctx, "newcrc.hash", map[string]interface{}{
		"files":   len(paths),
		"workers": p.workers,
	}, func(context.Context) error {
		var g errgroup.Group
		g.SetLimit(p.workers)

		for i, path := range paths {
			g.Go(func() error {
				r := p.hasher.Hash(path)
				results[i] = r
				if p.observer != nil {
					p.observer.TaskDone(i, r)
				}
				return nil
			})
		}
		return g.Wait()
	})

	return results
}
