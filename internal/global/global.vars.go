package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"doc_tagging/config"
	"doc_tagging/internal/registry"
	"doc_tagging/internal/tagging"
)

// MongoDB_CollectionNames chứa tên các collection trong MongoDB
type MongoDB_CollectionNames struct {
	ContentArticles string // Tên collection cho bài viết và review
}

// Các biến toàn cục
var Validate *validator.Validate              // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client             // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionNames{ // Tên các collection
	ContentArticles: "content_articles",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var TaggingRegistry *tagging.Registry                               // Các loại tài liệu đã đăng ký tagging
