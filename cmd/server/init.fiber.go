package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	articlehdl "doc_tagging/internal/api/article/handler"
	articlerouter "doc_tagging/internal/api/article/router"
	taghdl "doc_tagging/internal/api/tag/handler"
	tagrouter "doc_tagging/internal/api/tag/router"
	"doc_tagging/internal/common"
	"doc_tagging/internal/global"
	"doc_tagging/internal/logger"
	"doc_tagging/internal/tagging"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "Doc Tagging API",
		ServerHeader:  "Doc Tagging API",
		StrictRouting: false,
		CaseSensitive: true, // Tên loại tài liệu trong /tags/:type phân biệt hoa thường
		BodyLimit:     4 * 1024 * 1024,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // Chế độ sync chờ cả lần tính lại bảng tổng hợp
		IdleTimeout:  120 * time.Second,

		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusNotFound, fiber.StatusConflict:
					errorCode = common.ErrCodeDatabaseQuery.Code
				}
			}

			logger.WithRequest(c).WithFields(map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
				"message":   message,
			}).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// 1. Request ID - trace theo request
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. Recover - handler đã tự bọc SafeHandlerWrapper, đây là lớp cuối cho middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))

	// 3. CORS
	corsOrigins := global.MongoDB_ServerConfig.CORS_Origins
	allowOrigins := []string{"*"}
	if corsOrigins != "*" {
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        24 * 60 * 60,
	}))

	// 4. Rate limit theo IP, bỏ qua health check và metrics
	if global.MongoDB_ServerConfig.RateLimit_Enabled && global.MongoDB_ServerConfig.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        global.MongoDB_ServerConfig.RateLimit_Max,
			Expiration: time.Duration(global.MongoDB_ServerConfig.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeValidationInput.Code,
					"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics" || c.Method() == fiber.MethodOptions
			},
		}))
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(tagging.Gather, promhttp.HandlerOpts{})))

	// Routes
	v1 := app.Group("/api/v1")

	articleHandler, err := articlehdl.NewArticleHandler()
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to create article handler: %v", err)
	}
	articlerouter.Register(v1, articleHandler)

	tagHandler, err := taghdl.NewTagHandler(global.TaggingRegistry)
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to create tag handler: %v", err)
	}
	tagrouter.Register(v1, tagHandler)

	return app
}
