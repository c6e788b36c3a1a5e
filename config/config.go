package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Các chế độ chạy tính lại bảng tổng hợp tags
const (
	AggregationModeSync  = "sync"  // Chạy ngay trong request, lỗi trả về cho caller
	AggregationModeAsync = "async" // Gộp trigger và chạy nền
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                                  // Cổng server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI" envDefault:"mongodb://localhost:27017"` // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"doc_tagging"`                    // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`                                // Các origins được phép (phân cách bởi dấu phẩy)
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`                            // Số request tối đa trong window
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`                          // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`                       // Bật/tắt rate limiting

	// Tagging
	Tagging_AggregationMode   string `env:"TAGGING_AGGREGATION_MODE" envDefault:"sync"` // sync | async
	Tagging_ReconcileInterval int    `env:"TAGGING_RECONCILE_INTERVAL" envDefault:"0"`  // Giây, 0 = tắt worker đối soát
	Tagging_CacheTTL          int    `env:"TAGGING_CACHE_TTL" envDefault:"30"`          // Giây, 0 = không cache
	Tagging_CacheSize         int    `env:"TAGGING_CACHE_SIZE" envDefault:"500"`        // Số entry tối đa trong cache
	Tagging_AggregateTimeout  int    `env:"TAGGING_AGGREGATE_TIMEOUT" envDefault:"30"`  // Giây cho mỗi lần tính lại (chế độ async)
}

// Validate kiểm tra các giá trị cấu hình
func (c *Configuration) Validate() error {
	switch c.Tagging_AggregationMode {
	case AggregationModeSync, AggregationModeAsync:
	default:
		return fmt.Errorf("TAGGING_AGGREGATION_MODE không hợp lệ: %q (chỉ nhận sync hoặc async)", c.Tagging_AggregationMode)
	}
	if c.Tagging_ReconcileInterval < 0 || c.Tagging_CacheTTL < 0 || c.Tagging_CacheSize < 0 {
		return fmt.Errorf("các giá trị TAGGING_* không được âm")
	}
	return nil
}

// CacheTTL trả về TTL của cache đọc bảng tổng hợp
func (c *Configuration) CacheTTL() time.Duration {
	return time.Duration(c.Tagging_CacheTTL) * time.Second
}

// ReconcileInterval trả về chu kỳ của worker đối soát
func (c *Configuration) ReconcileInterval() time.Duration {
	return time.Duration(c.Tagging_ReconcileInterval) * time.Second
}

// AggregateTimeout trả về timeout cho mỗi lần tính lại nền
func (c *Configuration) AggregateTimeout() time.Duration {
	return time.Duration(c.Tagging_AggregateTimeout) * time.Second
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Đi lên dần để tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi từ environment variables.
// Có thể truyền đường dẫn file env cụ thể qua files.
func NewConfig(files ...string) (*Configuration, error) {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = []string{envPath}
		}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			// Thiếu file env không phải lỗi, vẫn đọc từ environment variables
			fmt.Printf("Không tìm thấy file env tại %s, dùng environment variables\n", f)
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("không thể load file env tại %s: %w", f, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi khi parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
