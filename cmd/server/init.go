package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"doc_tagging/config"
	articlemodels "doc_tagging/internal/api/article/models"
	"doc_tagging/internal/database"
	"doc_tagging/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo validator (no_xss, tag_input)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to initialize config: %v", err)
	}
	global.MongoDB_ServerConfig = cfg
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database và index cho các collection
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	articles := global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.ContentArticles)
	if err := database.CreateIndexes(ctx, articles, articlemodels.Article{}); err != nil {
		logrus.Errorf("Failed to create indexes for %s: %v", articles.Name(), err)
	}
}
