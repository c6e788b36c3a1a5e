package tagging

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncRunner_ReturnsError(t *testing.T) {
	cause := errors.New("boom")
	err := SyncRunner{}.Trigger(context.Background(), "k", func(ctx context.Context) error { return cause })
	assert.Equal(t, cause, err)
}

func TestCoalescer_AtMostOneInFlightPlusOnePending(t *testing.T) {
	c := NewCoalescer(time.Second)
	release := make(chan struct{})
	started := make(chan struct{}, 10)
	var runs int32

	fn := func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		started <- struct{}{}
		<-release
		return nil
	}

	require.NoError(t, c.Trigger(context.Background(), "notes_tags_aggregation", fn))
	<-started

	// Lần chạy đầu đang bị giữ, các trigger sau gộp vào một lần chờ
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Trigger(context.Background(), "notes_tags_aggregation", fn))
	}
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Flush(ctx))
	assert.Equal(t, int32(2), atomic.LoadInt32(&runs))
}

func TestCoalescer_KeysIndependent(t *testing.T) {
	c := NewCoalescer(0)
	var runs int32
	fn := func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}
	require.NoError(t, c.Trigger(context.Background(), "a", fn))
	require.NoError(t, c.Trigger(context.Background(), "b", fn))

	require.NoError(t, c.Flush(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&runs))
}

func TestCoalescer_SurvivesPanicAndCancelledRequest(t *testing.T) {
	c := NewCoalescer(time.Second)
	reqCtx, cancelReq := context.WithCancel(context.Background())

	var sawCancelled atomic.Bool
	require.NoError(t, c.Trigger(reqCtx, "k", func(ctx context.Context) error {
		panic("aggregation panic")
	}))
	cancelReq()
	require.NoError(t, c.Trigger(reqCtx, "k", func(ctx context.Context) error {
		sawCancelled.Store(ctx.Err() != nil)
		return nil
	}))

	require.NoError(t, c.Flush(context.Background()))
	assert.False(t, sawCancelled.Load())
}

func TestCoalescer_FlushHonorsContext(t *testing.T) {
	c := NewCoalescer(0)
	release := make(chan struct{})
	require.NoError(t, c.Trigger(context.Background(), "k", func(ctx context.Context) error {
		<-release
		return nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Flush(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, c.Flush(context.Background()))
}

func TestTaggable_AsyncEventuallyConsistent(t *testing.T) {
	c := NewCoalescer(time.Second)
	store := newMemStore("notes")
	tg, err := NewRegistry(c).Register("Note", store, WithAggregation(true))
	require.NoError(t, err)

	for i, tags := range []string{"a, b", "b, c", "c"} {
		doc := &note{ID: string(rune('1' + i))}
		require.NoError(t, create(t, tg, store, doc, tags))
	}
	require.NoError(t, c.Flush(context.Background()))

	weights, err := tg.TagsWithWeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []TagWeight{{Tag: "a", Count: 1}, {Tag: "b", Count: 2}, {Tag: "c", Count: 2}}, weights)
	assert.LessOrEqual(t, store.recomputeCount(), 3)
}
