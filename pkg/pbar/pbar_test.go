package pbar_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/ostafen/reext/pkg/pbar"
	"github.com/stretchr/testify/require"
)

func TestProgressBar_Render(t *testing.T) {
	var buf bytes.Buffer
	pb := pbar.NewProgressBarState(&buf, 4)

	pb.Add(10, true)
	pb.Add(20, false)
	pb.Render(true)

	out := buf.String()
	require.Contains(t, out, "[==========>         ]")
	require.Contains(t, out, " 50%")
	require.Contains(t, out, "(2/4)")
	require.Contains(t, out, "Recovered: 1")
	require.Equal(t, int64(30), pb.ProcessedBytes)
}

func TestProgressBar_Throttled(t *testing.T) {
	var buf bytes.Buffer
	pb := pbar.NewProgressBarState(&buf, 100)

	for range 10 {
		pb.Add(1, false)
	}
	require.Empty(t, buf.String())
}

func TestProgressBar_Finish(t *testing.T) {
	var buf bytes.Buffer
	pb := pbar.NewProgressBarState(&buf, 0)
	pb.Finish()

	out := buf.String()
	require.Contains(t, out, "100%")
	require.Contains(t, out, "[done]")
	require.True(t, strings.HasSuffix(out, "\n"))
}

func TestProgressBar_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	pb := pbar.NewProgressBarState(&buf, 200)

	var wg sync.WaitGroup
	for i := range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pb.Add(1, i%2 == 0)
		}()
	}
	wg.Wait()
	pb.Finish()

	require.Equal(t, 200, pb.ProcessedFiles)
	require.Equal(t, 100, pb.RecoveredFiles)
	require.Contains(t, buf.String(), "(200/200)")
}
