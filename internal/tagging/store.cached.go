package tagging

import (
	"context"
	"time"

	"github.com/karlseguin/ccache/v2"
)

// CachedStore bọc một Store với cache TTL cho phần đọc bảng tổng hợp.
// Mỗi lần tính lại thành công sẽ xóa entry tương ứng, nên trong cùng một process
// kết quả đọc luôn phản ánh lần tính lại gần nhất. Giữa nhiều process, dữ liệu có thể
// cũ tối đa một TTL.
type CachedStore struct {
	inner Store
	cache *ccache.Cache
	ttl   time.Duration
}

// NewCachedStore tạo cache với maxSize entry và TTL cho mỗi entry
func NewCachedStore(inner Store, maxSize int, ttl time.Duration) *CachedStore {
	if maxSize <= 0 {
		maxSize = 500
	}
	pruneCount := maxSize >> 3
	if pruneCount <= 0 {
		pruneCount = 10
	}
	return &CachedStore{
		inner: inner,
		cache: ccache.New(ccache.Configure().MaxSize(int64(maxSize)).ItemsToPrune(uint32(pruneCount))),
		ttl:   ttl,
	}
}

// CollectionName trả về tên collection của store bên trong
func (c *CachedStore) CollectionName() string {
	return c.inner.CollectionName()
}

// RecomputeTagCounts tính lại rồi xóa cache của bảng tổng hợp
func (c *CachedStore) RecomputeTagCounts(ctx context.Context, field, out string, opts map[string]interface{}) error {
	err := c.inner.RecomputeTagCounts(ctx, field, out, opts)
	// Xóa cả khi lỗi: $out có thể đã hoàn tất trước khi lỗi được báo về
	c.cache.Delete(out)
	return err
}

// ReadTagCounts đọc từ cache, miss thì đọc từ store bên trong
func (c *CachedStore) ReadTagCounts(ctx context.Context, out string) ([]TagWeight, error) {
	if item := c.cache.Get(out); item != nil && !item.Expired() {
		CacheRequestCounter.WithLabelValues("hit").Inc()
		return copyWeights(item.Value().([]TagWeight)), nil
	}
	CacheRequestCounter.WithLabelValues("miss").Inc()

	weights, err := c.inner.ReadTagCounts(ctx, out)
	if err != nil {
		return nil, err
	}
	c.cache.Set(out, copyWeights(weights), c.ttl)
	return weights, nil
}

// Stop dừng goroutine nền của cache
func (c *CachedStore) Stop() {
	c.cache.Stop()
}

func copyWeights(in []TagWeight) []TagWeight {
	return append([]TagWeight(nil), in...)
}
