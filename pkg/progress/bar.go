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

// Package progress reports hashing progress on a terminal.
//
// Bar receives one notification per finished file and advances a progress
// bar by one step for each. Files that failed are counted separately and
// shown in the bar description.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"

	hashio "github.com/Luxuse/NewCrc/pkg/hashing/engines/io"
)

// Bar counts finished tasks. TaskDone may be called from many goroutines;
// a single goroutine owns the underlying progress bar.
type Bar struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	ch   chan struct{}
	done chan struct{}

	completed atomic.Int64
	failed    atomic.Int64
}

// New returns a Bar that draws on w once Begin is called.
func New(w io.Writer) *Bar {
	return &Bar{w: w}
}

// Begin draws an empty bar for total tasks. A run without files draws
// nothing.
func (b *Bar) Begin(total int) {
	if total <= 0 {
		return
	}

	b.bar = progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription("hashing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	_ = b.bar.RenderBlank()

	b.ch = make(chan struct{}, 4096)
	b.done = make(chan struct{})
	go func() {
		defer close(b.done)
		for range b.ch {
			_ = b.bar.Add(1)
			if n := b.failed.Load(); n > 0 {
				b.bar.Describe(fmt.Sprintf("hashing (%d errors)", n))
			}
		}
	}()
}

// TaskDone records one finished task.
func (b *Bar) TaskDone(_ int, r hashio.Result) {
	b.completed.Add(1)
	if r.Err != nil {
		b.failed.Add(1)
	}
	if b.ch != nil {
		b.ch <- struct{}{}
	}
}

// Finish completes the bar and moves the cursor to a fresh line.
func (b *Bar) Finish() {
	if b.ch == nil {
		return
	}
	close(b.ch)
	<-b.done
	b.ch = nil
	_ = b.bar.Finish()
	fmt.Fprintln(b.w)
}

// Completed returns the number of finished tasks.
func (b *Bar) Completed() int64 {
	return b.completed.Load()
}

// Failed returns the number of finished tasks that reported an error.
func (b *Bar) Failed() int64 {
	return b.failed.Load()
}
