package report

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(
		filepath.Join(t.TempDir(), "history.db"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHistory_AppendAndRecent(t *testing.T) {
	h := openTestHistory(t)

	for i := 0; i < 3; i++ {
		s := &Summary{
			ID: fmt.Sprintf(
				"run_2026010%d_120000", i+1,
			),
			GeneratedAt:  time.Now(),
			TotalChecks:  10,
			PassedChecks: 9,
			FailedChecks: 1,
			PassRate:     0.9,
			TotalElapsed: 3 * time.Second,
		}
		require.NoError(t, h.Append(s))
	}

	entries, err := h.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first: keys embed the timestamp.
	assert.Equal(t, "run_20260103_120000", entries[0].RunID)
	assert.Equal(t, "run_20260102_120000", entries[1].RunID)
	assert.Equal(t, 10, entries[0].TotalChecks)
	assert.Equal(t, "3s", entries[0].Elapsed)
}

func TestHistory_RecentMoreThanStored(t *testing.T) {
	h := openTestHistory(t)

	require.NoError(t, h.Append(&Summary{
		ID:          "run_20260101_000000",
		GeneratedAt: time.Now(),
	}))

	entries, err := h.Recent(50)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHistory_Len(t *testing.T) {
	h := openTestHistory(t)

	n, err := h.Len()
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, h.Append(&Summary{
		ID:          "run_a",
		GeneratedAt: time.Now(),
	}))
	require.NoError(t, h.Append(&Summary{
		ID:          "run_b",
		GeneratedAt: time.Now(),
	}))

	n, err = h.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestHistory_AppendOverwritesSameRunID(t *testing.T) {
	h := openTestHistory(t)

	s := &Summary{ID: "run_x", GeneratedAt: time.Now()}
	require.NoError(t, h.Append(s))
	s.PassedChecks = 5
	require.NoError(t, h.Append(s))

	n, err := h.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := h.Recent(1)
	require.NoError(t, err)
	assert.Equal(t, 5, entries[0].PassedChecks)
}
