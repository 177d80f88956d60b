package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/models"
	"github.com/linkward/linkward/internal/storage"
)

func TestAccessLogWorker_Appends(t *testing.T) {
	store := storage.NewMemoryStore()
	_, err := store.PutLink(context.Background(), &models.LinkRecord{
		ID:          "ab1cd",
		Destination: "https://example.com",
	})
	require.NoError(t, err)

	w := NewAccessLogWorker(zap.NewNop(), store, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.True(t, w.Enqueue("ab1cd", "1700000000000", []string{"Link accessed", "curl/8.5"}))

	require.Eventually(t, func() bool {
		rec, _, err := store.GetLink(context.Background(), "ab1cd")
		if err != nil || rec == nil {
			return false
		}
		return len(rec.Logs["1700000000000"]) == 2
	}, time.Second, 10*time.Millisecond)

	rec, _, err := store.GetLink(context.Background(), "ab1cd")
	require.NoError(t, err)
	assert.Equal(t, []string{"Link accessed", "curl/8.5"}, rec.Logs["1700000000000"])
}

func TestAccessLogWorker_FullQueueDrops(t *testing.T) {
	// Run is never started, so the buffer fills up and stays full.
	w := NewAccessLogWorker(zap.NewNop(), storage.NewMemoryStore(), 1)

	assert.True(t, w.Enqueue("ab1cd", "1", []string{"Link accessed", "ua"}))
	assert.False(t, w.Enqueue("ab1cd", "2", []string{"Link accessed", "ua"}))
}

func TestAccessLogWorker_MissingLinkIsNotFatal(t *testing.T) {
	store := storage.NewMemoryStore()
	w := NewAccessLogWorker(zap.NewNop(), store, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// The append fails inside the worker; the queue keeps draining.
	require.True(t, w.Enqueue("ghost", "1", []string{"Link accessed", "ua"}))

	_, err := store.PutLink(context.Background(), &models.LinkRecord{ID: "ab1cd"})
	require.NoError(t, err)
	require.True(t, w.Enqueue("ab1cd", "2", []string{"Link accessed", "ua"}))

	require.Eventually(t, func() bool {
		rec, _, err := store.GetLink(context.Background(), "ab1cd")
		return err == nil && rec != nil && len(rec.Logs["2"]) == 2
	}, time.Second, 10*time.Millisecond)
}
