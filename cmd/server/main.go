package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"doc_tagging/internal/api/events"
	"doc_tagging/internal/database"
	"doc_tagging/internal/global"
	"doc_tagging/internal/logger"
	"doc_tagging/internal/worker"
)

// initLogger khởi tạo logger, cấu hình đọc từ environment variables
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

func main() {
	initLogger()
	defer logger.Close()

	InitGlobal()
	InitRegistry()

	log := logger.GetAppLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker đối soát bảng tổng hợp tags (tắt khi interval = 0)
	if w := worker.NewTagReconcileWorker(global.TaggingRegistry, global.MongoDB_ServerConfig.ReconcileInterval()); w != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("🏷️ [TAG_RECONCILE] Worker goroutine panic")
				}
			}()
			w.Start(ctx)
		}()
	}

	app := InitFiberApp()
	address := ":" + global.MongoDB_ServerConfig.Address

	go func() {
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")
		if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), global.MongoDB_ServerConfig.AggregateTimeout()+10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("Fiber shutdown failed")
	}
	cancel()

	// Chờ các lần tính lại đang chờ và handler sự kiện trước khi đóng kết nối
	ShutdownTagging(shutdownCtx)
	events.Wait()

	if err := database.CloseInstance(shutdownCtx, global.MongoDB_Session); err != nil {
		log.WithError(err).Error("MongoDB disconnect failed")
	}
	log.Info("Server stopped")
}
