// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package pbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// ProgressBarState tracks the files processed by a recovery run and renders
// a single progress line. It is safe for concurrent use.
type ProgressBarState struct {
	mu sync.Mutex
	w  io.Writer

	TotalFiles     int
	ProcessedFiles int
	RecoveredFiles int
	ProcessedBytes int64

	StartTime          time.Time
	LastUpdateTime     time.Time
	LastProcessedFiles int
}

// NewProgressBarState initializes a new ProgressBarState rendering to w.
func NewProgressBarState(w io.Writer, totalFiles int) *ProgressBarState {
	now := time.Now()
	return &ProgressBarState{
		w:              w,
		TotalFiles:     totalFiles,
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Add records a processed file of the given size and renders the bar,
// at most once every MinRefreshRate.
func (pbs *ProgressBarState) Add(size int64, recovered bool) {
	pbs.mu.Lock()
	defer pbs.mu.Unlock()

	pbs.ProcessedFiles++
	pbs.ProcessedBytes += size
	if recovered {
		pbs.RecoveredFiles++
	}
	pbs.render(false)
}

// Render prints the progress line. Unless force is set, it does nothing if
// the last render is more recent than MinRefreshRate.
func (pbs *ProgressBarState) Render(force bool) {
	pbs.mu.Lock()
	defer pbs.mu.Unlock()

	pbs.render(force)
}

func (pbs *ProgressBarState) render(force bool) {
	elapsed := time.Since(pbs.LastUpdateTime)
	if !force && elapsed < MinRefreshRate {
		return
	}

	var percentage float64 = 100
	if pbs.TotalFiles > 0 {
		percentage = float64(pbs.ProcessedFiles) / float64(pbs.TotalFiles) * 100
	}

	filledLen := min(int(float64(barLength)*percentage/100), barLength)

	var bar string
	if filledLen == barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	var filesPerSec float64
	if elapsed > 0 {
		filesPerSec = float64(pbs.ProcessedFiles-pbs.LastProcessedFiles) / elapsed.Seconds()
	}

	var etaStr string
	if pbs.ProcessedFiles >= pbs.TotalFiles {
		etaStr = "done"
	} else if filesPerSec > 0 {
		etaSeconds := float64(pbs.TotalFiles-pbs.ProcessedFiles) / filesPerSec
		etaStr = fmt.Sprintf("%02d:%02d:%02d remaining",
			int(etaSeconds/3600),
			int(etaSeconds/60)%60,
			int(etaSeconds)%60)
	} else {
		etaStr = "calculating..."
	}

	pbs.LastUpdateTime = time.Now()
	pbs.LastProcessedFiles = pbs.ProcessedFiles

	// \r rewinds to the start of the line, trailing spaces clear leftovers of a longer line
	fmt.Fprintf(pbs.w, "\r[INFO] Progress: [%s] %3.0f%% (%d/%d) | Recovered: %d | @ %.1f files/s [%s]    ",
		bar,
		percentage,
		pbs.ProcessedFiles,
		pbs.TotalFiles,
		pbs.RecoveredFiles,
		filesPerSec,
		etaStr)
}

// Finish renders the final state and moves to the next line.
func (pbs *ProgressBarState) Finish() {
	pbs.mu.Lock()
	defer pbs.mu.Unlock()

	pbs.render(true)
	fmt.Fprintln(pbs.w)
}
