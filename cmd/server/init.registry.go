package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"doc_tagging/config"
	articlesvc "doc_tagging/internal/api/article/service"
	"doc_tagging/internal/api/events"
	"doc_tagging/internal/common"
	"doc_tagging/internal/database"
	"doc_tagging/internal/global"
	"doc_tagging/internal/tagging"
)

// Các thành phần tagging cần dọn khi tắt server
var (
	tagCoalescer *tagging.Coalescer
	tagStores    []*tagging.CachedStore
)

func InitRegistry() {
	// Khởi tạo registry và đăng ký các collections
	if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig); err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")

	if err := InitTagging(global.MongoDB_ServerConfig); err != nil {
		logrus.Fatalf("Failed to initialize tagging: %v", err)
	}
	logrus.Info("Initialized tagging registry")

	events.OnDataChanged(events.AuditHandler)
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{global.MongoDB_ColNames.ContentArticles}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}
	return nil
}

// InitTagging tạo registry tagging theo chế độ chạy, đăng ký các loại tài liệu
// và tạo index theo FieldOptions của từng loại.
func InitTagging(cfg *config.Configuration) error {
	var runner tagging.Runner = tagging.SyncRunner{}
	if cfg.Tagging_AggregationMode == config.AggregationModeAsync {
		tagCoalescer = tagging.NewCoalescer(cfg.AggregateTimeout())
		runner = tagCoalescer
	}
	global.TaggingRegistry = tagging.NewRegistry(runner)

	coll, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.ContentArticles)
	if !ok {
		return common.WithDetails(common.ErrNotConfigured, fmt.Sprintf("collection %s chưa được đăng ký", global.MongoDB_ColNames.ContentArticles))
	}
	var store tagging.Store = tagging.NewMongoStore(coll)
	if ttl := cfg.CacheTTL(); ttl > 0 {
		cached := tagging.NewCachedStore(store, cfg.Tagging_CacheSize, ttl)
		tagStores = append(tagStores, cached)
		store = cached
	}
	if err := articlesvc.RegisterTaggables(global.TaggingRegistry, store); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, t := range global.TaggingRegistry.All() {
		if t.ParentType() != "" {
			continue
		}
		c, ok := global.RegistryCollections.Get(t.CollectionName())
		if !ok {
			continue
		}
		tcfg := t.Config()
		if err := database.CreateIndexesFromHints(ctx, c, tcfg.TagsField, tcfg.FieldOptions); err != nil {
			logrus.Errorf("Failed to create tag index for %s: %v", t.TypeName(), err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"mode":     cfg.Tagging_AggregationMode,
		"cacheTTL": cfg.CacheTTL().String(),
		"types":    len(global.TaggingRegistry.All()),
	}).Info("Tagging ready")
	return nil
}

// ShutdownTagging chờ các lần tính lại đang chờ và dừng cache
func ShutdownTagging(ctx context.Context) {
	if tagCoalescer != nil {
		if err := tagCoalescer.Flush(ctx); err != nil {
			logrus.Warnf("Tag aggregation flush interrupted: %v", err)
		}
	}
	for _, s := range tagStores {
		s.Stop()
	}
}
