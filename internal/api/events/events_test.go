package events

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitDataChanged(t *testing.T) {
	Reset()
	defer Reset()

	var mu sync.Mutex
	var got []DataChangeEvent
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		panic("handler lỗi không ảnh hưởng handler khác")
	})

	ctx, cancel := context.WithCancel(context.Background())
	EmitDataChanged(ctx, DataChangeEvent{CollectionName: "content_articles", Operation: OpUpdate, ResourceID: "1", ChangedFields: []string{"tags"}})
	cancel()
	Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 1)
	assert.Equal(t, []string{"tags"}, got[0].ChangedFields)
	assert.Equal(t, OpUpdate, got[0].Operation)
}
