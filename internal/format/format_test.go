package format_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/askforge/doubtbot/internal/format"
)

func TestThreadName_TruncatesDescription(t *testing.T) {
	name := format.ThreadName("asha", "short one")
	require.Equal(t, "Doubt from asha - short one", name)

	long := strings.Repeat("x", 100)
	name = format.ThreadName("asha", long)
	require.Equal(t, "Doubt from asha - "+strings.Repeat("x", 25), name)
}

func TestOpenDoubtsReport_SingleChunk(t *testing.T) {
	items := []format.ReportItem{
		{AuthorName: "asha", Description: "build failure", ThreadID: "t1", CreatedAt: time.Now()},
		{AuthorName: "ravi", Description: "flaky test", ThreadID: "t2", CreatedAt: time.Now()},
	}

	chunks := format.OpenDoubtsReport(items, format.ReportChunkLimit)
	require.Len(t, chunks, 1)
	require.Contains(t, chunks[0], "Open doubts: 2")
	require.Contains(t, chunks[0], "asha")
	require.Contains(t, chunks[0], "<#t2>")
	require.Less(t, strings.Index(chunks[0], "1. asha"), strings.Index(chunks[0], "2. ravi"))
}

func TestOpenDoubtsReport_ChunksRespectLimit(t *testing.T) {
	var items []format.ReportItem
	for i := 0; i < 20; i++ {
		items = append(items, format.ReportItem{
			AuthorName:  fmt.Sprintf("user%02d", i),
			Description: strings.Repeat("words ", 10),
			ThreadID:    fmt.Sprintf("t%02d", i),
			CreatedAt:   time.Now(),
		})
	}

	const limit = 200
	chunks := format.OpenDoubtsReport(items, limit)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), limit)
	}

	// Order survives chunking.
	joined := strings.Join(chunks, "\n")
	require.Less(t, strings.Index(joined, "user00"), strings.Index(joined, "user19"))
}

func TestOpenDoubtsReport_SplitsOversizedEntry(t *testing.T) {
	items := []format.ReportItem{
		{
			AuthorName:  "asha",
			Description: strings.Repeat("x", 1950),
			ThreadID:    "t1",
			CreatedAt:   time.Now(),
		},
	}

	chunks := format.OpenDoubtsReport(items, format.ReportChunkLimit)
	require.Greater(t, len(chunks), 1, "a single oversized entry must span chunks")
	for _, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), format.ReportChunkLimit)
	}

	// Nothing is dropped across the split.
	joined := strings.Join(chunks, "")
	require.Contains(t, joined, strings.Repeat("x", 1950))
	require.Contains(t, joined, "<#t1>")
}

func TestAlreadyResolved(t *testing.T) {
	require.Equal(t, "This doubt is already resolved.", format.AlreadyResolved(""))
	require.Contains(t, format.AlreadyResolved("mod"), "mod")
}
