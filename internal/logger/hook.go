package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log bất đồng bộ vào nhiều writers (file, stdout) để tránh blocking request handling
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHookWithWriters tạo một async hook mới với nhiều writers
// bufferSize: kích thước buffer cho log entries (mặc định 1000)
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire không block, chỉ đưa entry vào channel. Channel đầy thì bỏ entry.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		// Hook đã đóng: ghi trực tiếp
		h.write(snapshot(entry))
		return nil
	}

	select {
	case h.entries <- snapshot(entry):
	default:
	}
	return nil
}

// snapshot sao chép entry để goroutine ghi log không đụng vào entry mà logrus tái sử dụng.
// Entry.Dup() không copy Message, Level và Caller nên phải gán lại.
func snapshot(entry *logrus.Entry) *logrus.Entry {
	d := entry.Dup()
	d.Message = entry.Message
	d.Level = entry.Level
	d.Caller = entry.Caller
	return d
}

// processEntries xử lý log entries trong goroutine riêng, có recover để không crash server
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()
			h.write(entry)
		}()
	}
}

func (h *AsyncHook) write(entry *logrus.Entry) {
	// FilterHook đánh dấu entry bị lọc bằng field "_filtered"
	if filtered, ok := entry.Data["_filtered"].(bool); ok && filtered {
		return
	}
	delete(entry.Data, "_filtered")

	var data []byte
	var err error
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return
	}

	for _, writer := range h.writers {
		_, _ = writer.Write(data)
	}
}

// Close đóng hook và đợi tất cả entries được xử lý xong
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}

// FilterHook lọc log entries theo module, collection và level.
// Map rỗng hoặc chứa "*" nghĩa là cho phép tất cả.
type FilterHook struct {
	allowedModules     map[string]bool
	allowedCollections map[string]bool
	allowedLogTypes    map[string]bool
	mu                 sync.RWMutex
}

// NewFilterHook tạo một filter hook mới với cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{}
	hook.UpdateFilters(cfg)
	return hook
}

// UpdateFilters cập nhật filters từ config mới (có thể gọi runtime)
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.allowedModules = parseFilter(cfg.FilterModules)
	h.allowedCollections = parseFilter(cfg.FilterCollections)
	h.allowedLogTypes = parseFilter(cfg.FilterLogTypes)
}

// parseFilter parse "value1,value2" thành map (lowercase)
func parseFilter(filterStr string) map[string]bool {
	result := make(map[string]bool)
	if filterStr == "" || filterStr == "*" {
		result["*"] = true
		return result
	}
	for _, v := range strings.Split(filterStr, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			result[strings.ToLower(v)] = true
		}
	}
	return result
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry bị lọc bằng "_filtered" = true, AsyncHook sẽ bỏ qua entry đó
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !allowed(h.allowedLogTypes, entry.Level.String()) ||
		!allowedField(h.allowedModules, entry.Data["module"]) ||
		!allowedField(h.allowedCollections, entry.Data["collection"]) {
		entry.Data["_filtered"] = true
	}
	return nil
}

func allowed(set map[string]bool, value string) bool {
	return set["*"] || set[strings.ToLower(value)]
}

// allowedField: entry không có field thì không bị lọc
func allowedField(set map[string]bool, raw interface{}) bool {
	value, ok := raw.(string)
	if !ok || value == "" {
		return true
	}
	return allowed(set, value)
}
