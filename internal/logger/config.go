package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	// Log Level: trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL"`

	// Log Format: json, text
	Format string `env:"LOG_FORMAT"`

	// Log Output: file, stdout, both
	Output string `env:"LOG_OUTPUT"`

	// Log Rotation
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`   // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"`  // Số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"`      // Số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`  // Nén file cũ

	// Log Paths
	LogPath   string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile   string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
	ErrorFile string `env:"LOG_ERROR_FILE" envDefault:"error.log"`

	// Filters: danh sách phân cách bởi dấu phẩy, rỗng hoặc "*" = tất cả
	FilterModules     string `env:"LOG_FILTER_MODULES"`
	FilterCollections string `env:"LOG_FILTER_COLLECTIONS"`
	FilterLogTypes    string `env:"LOG_FILTER_TYPES"`
}

// DefaultConfig trả về cấu hình mặc định, có override từ environment variables
func DefaultConfig() *LogConfig {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	config := &LogConfig{}
	if err := env.Parse(config); err != nil {
		// Giá trị env sai định dạng: dùng mặc định cứng
		config = &LogConfig{MaxSize: 100, MaxBackups: 7, MaxAge: 7, Compress: true,
			LogPath: "./logs", AppFile: "app.log", AuditFile: "audit.log", ErrorFile: "error.log"}
	}

	// Điều chỉnh theo môi trường nếu chưa set
	switch goEnv {
	case "development":
		setDefault(&config.Level, "debug")
		setDefault(&config.Format, "text")
		setDefault(&config.Output, "both")
	case "test":
		setDefault(&config.Level, "warn")
		setDefault(&config.Format, "text")
		setDefault(&config.Output, "stdout")
	default:
		setDefault(&config.Level, "info")
		setDefault(&config.Format, "json")
		setDefault(&config.Output, "both")
	}

	config.Level = strings.ToLower(config.Level)
	config.Format = strings.ToLower(config.Format)
	config.Output = strings.ToLower(config.Output)
	return config
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
