// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/webscout/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{Dir: filepath.Join(t.TempDir(), ".webscout")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, Entry{
		StartedAt:    started,
		Command:      "search",
		Input:        "what is RAG",
		Outcome:      "ok",
		Credits:      2,
		ResponseTime: 1.4,
	}))
	require.NoError(t, store.Record(ctx, Entry{
		Command: "research",
		Input:   "EV market analysis",
		Outcome: "done",
	}))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "research", entries[0].Command)
	assert.Equal(t, "search", entries[1].Command)
	assert.Equal(t, "what is RAG", entries[1].Input)
	assert.True(t, started.Equal(entries[1].StartedAt))
	assert.InDelta(t, 2, entries[1].Credits, 1e-9)
}

func TestListRespectsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, Entry{
			Command: "search",
			Input:   fmt.Sprintf("query %d", i),
			Outcome: "ok",
		}))
	}

	entries, err := store.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "query 4", entries[0].Input)
}

func TestListEmptyStore(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreReopensExistingDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".webscout")
	ctx := context.Background()

	store, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, Entry{Command: "crawl", Input: "https://a", Outcome: "ok"}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "crawl", entries[0].Command)
}
