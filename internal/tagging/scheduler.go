package tagging

import (
	"context"
	"sync"
	"time"

	"doc_tagging/internal/logger"
)

// AggregateFunc là một lần tính lại bảng tổng hợp
type AggregateFunc func(ctx context.Context) error

// Runner quyết định khi nào và ở đâu một lần tính lại được thực thi.
// key xác định bảng tổng hợp: các trigger cùng key là tương đương nhau.
type Runner interface {
	Trigger(ctx context.Context, key string, fn AggregateFunc) error
}

// SyncRunner chạy ngay trong goroutine của caller và trả lỗi về cho caller
type SyncRunner struct{}

// Trigger chạy fn ngay lập tức
func (SyncRunner) Trigger(ctx context.Context, _ string, fn AggregateFunc) error {
	return fn(ctx)
}

// coalesceState là trạng thái của một key: tối đa một lần chạy và một lần chờ
type coalesceState struct {
	running bool
	pending AggregateFunc
}

// Coalescer chạy tính lại ở nền, mỗi key có tối đa một lần đang chạy và một lần chờ.
// Trigger đến khi đang chạy sẽ gộp vào lần chờ. Lỗi chỉ được log, không trả về.
type Coalescer struct {
	timeout time.Duration

	mu     sync.Mutex
	states map[string]*coalesceState
	idle   *sync.Cond
	active int
}

// NewCoalescer tạo coalescer, timeout áp dụng cho mỗi lần chạy (0 = không giới hạn)
func NewCoalescer(timeout time.Duration) *Coalescer {
	c := &Coalescer{
		timeout: timeout,
		states:  make(map[string]*coalesceState),
	}
	c.idle = sync.NewCond(&c.mu)
	return c
}

// Trigger xếp lịch tính lại cho key và trả về ngay
func (c *Coalescer) Trigger(ctx context.Context, key string, fn AggregateFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.states[key]
	if !ok {
		st = &coalesceState{}
		c.states[key] = st
	}
	if st.running {
		if st.pending != nil {
			CoalescedTriggerCounter.WithLabelValues(key).Inc()
		}
		st.pending = fn
		return nil
	}

	st.running = true
	c.active++
	// Lần chạy nền không bị hủy theo request đã kết thúc
	go c.loop(context.WithoutCancel(ctx), key, st, fn)
	return nil
}

func (c *Coalescer) loop(ctx context.Context, key string, st *coalesceState, fn AggregateFunc) {
	for {
		c.runOnce(ctx, key, fn)

		c.mu.Lock()
		if st.pending == nil {
			st.running = false
			c.active--
			if c.active == 0 {
				c.idle.Broadcast()
			}
			c.mu.Unlock()
			return
		}
		fn = st.pending
		st.pending = nil
		c.mu.Unlock()
	}
}

func (c *Coalescer) runOnce(ctx context.Context, key string, fn AggregateFunc) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithModuleAndCollection("tagging", key).WithField("panic", r).Error("Panic khi tính lại bảng tổng hợp tags")
		}
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := fn(ctx); err != nil {
		logger.WithModuleAndCollection("tagging", key).WithError(err).Warn("Tính lại bảng tổng hợp tags nền thất bại")
	}
}

// Flush chờ đến khi không còn lần chạy nào đang chạy hoặc đang chờ, hoặc ctx bị hủy
func (c *Coalescer) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.mu.Lock()
		for c.active > 0 {
			c.idle.Wait()
		}
		c.mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
