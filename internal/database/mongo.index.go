package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"doc_tagging/internal/logger"
)

// IndexSpec là một index cần có trên collection
type IndexSpec struct {
	Name    string
	Keys    bson.D
	Options *options.IndexOptions
}

// CreateIndexes đọc tag `index` trên struct model và đảm bảo các index tương ứng tồn tại.
// Cú pháp tag: các cấu hình cách nhau bởi ';', mỗi cấu hình gồm các mục 'key' hoặc 'key:value'
// cách nhau bởi ','. Ví dụ `index:"single,order:-1"`, `index:"text"`, `index:"unique,sparse"`.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	var specs []IndexSpec
	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}
		for _, cfg := range parseIndexTag(tag) {
			fieldSpecs, err := indexSpecsFor(bsonField, cfg)
			if err != nil {
				return err
			}
			specs = append(specs, fieldSpecs...)
		}
	}
	return ensureIndexes(ctx, collection, specs)
}

// CreateIndexesFromHints đảm bảo index cho field từ các option chuyển tiếp khi đăng ký tagging,
// ví dụ {"index": "single", "order": "-1"}. Không có key "index" thì không làm gì.
func CreateIndexesFromHints(ctx context.Context, collection *mongo.Collection, field string, hints map[string]string) error {
	specs, err := IndexSpecsFromHints(field, hints)
	if err != nil {
		return err
	}
	return ensureIndexes(ctx, collection, specs)
}

// IndexSpecsFromHints chuyển hints thành danh sách index.
// "index" nhận nhiều loại cách nhau bởi '|', ví dụ "single|text".
func IndexSpecsFromHints(field string, hints map[string]string) ([]IndexSpec, error) {
	kinds, ok := hints["index"]
	if !ok || kinds == "" {
		return nil, nil
	}

	cfg := map[string]string{}
	for key, value := range hints {
		if key != "index" {
			cfg[key] = value
		}
	}
	for _, kind := range strings.Split(kinds, "|") {
		cfg[strings.TrimSpace(kind)] = ""
	}
	return indexSpecsFor(field, cfg)
}

// indexSpecsFor dựng index cho một field từ một cấu hình đã parse
func indexSpecsFor(field string, cfg map[string]string) ([]IndexSpec, error) {
	order := 1
	if cfg["order"] == "-1" {
		order = -1
	}
	_, sparse := cfg["sparse"]
	if v, ok := cfg["sparse"]; ok && v == "false" {
		sparse = false
	}

	var specs []IndexSpec
	if _, ok := cfg["text"]; ok {
		name := field + "_text"
		specs = append(specs, IndexSpec{Name: name, Keys: bson.D{{Key: field, Value: "text"}}, Options: options.Index().SetName(name)})
	}
	if _, ok := cfg["single"]; ok {
		name := field + "_single"
		opts := options.Index().SetName(name)
		if sparse {
			opts.SetSparse(true)
		}
		specs = append(specs, IndexSpec{Name: name, Keys: bson.D{{Key: field, Value: order}}, Options: opts})
	}
	if _, ok := cfg["unique"]; ok {
		name := field + "_unique"
		opts := options.Index().SetName(name).SetUnique(true)
		if sparse {
			opts.SetSparse(true)
		}
		specs = append(specs, IndexSpec{Name: name, Keys: bson.D{{Key: field, Value: 1}}, Options: opts})
	}
	if ttlValue, ok := cfg["ttl"]; ok {
		ttl, err := strconv.Atoi(ttlValue)
		if err != nil {
			return nil, fmt.Errorf("TTL không hợp lệ cho field %s: %w", field, err)
		}
		name := field + "_ttl"
		specs = append(specs, IndexSpec{Name: name, Keys: bson.D{{Key: field, Value: 1}}, Options: options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl))})
	}
	return specs, nil
}

// parseIndexTag tách tag index thành các cấu hình
func parseIndexTag(tag string) []map[string]string {
	var result []map[string]string
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, subPart := range strings.Split(part, ",") {
			subPart = strings.TrimSpace(subPart)
			if subPart == "" {
				continue
			}
			kv := strings.SplitN(subPart, ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		if len(entry) > 0 {
			result = append(result, entry)
		}
	}
	return result
}

// ensureIndexes tạo index còn thiếu, thay thế index cùng tên nhưng khác cấu hình
func ensureIndexes(ctx context.Context, collection *mongo.Collection, specs []IndexSpec) error {
	if len(specs) == 0 {
		return nil
	}
	log := logger.WithModuleAndCollection("database", collection.Name())

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existing := map[string]bson.M{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existing[name] = info
		}
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	for _, spec := range specs {
		if info, ok := existing[spec.Name]; ok {
			if sameIndex(info, spec) {
				log.WithField("index", spec.Name).Debug("Index đã tồn tại và đúng cấu hình")
				continue
			}
			if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
				return fmt.Errorf("không thể xóa index %s: %w", spec.Name, err)
			}
			log.WithField("index", spec.Name).Info("Đã xóa index cũ")
		}
		if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: spec.Options}); err != nil {
			return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
		}
		log.WithField("index", spec.Name).Info("Đã tạo index")
	}
	return nil
}

// sameIndex so sánh index hiện có với spec (keys, unique, TTL)
func sameIndex(info bson.M, spec IndexSpec) bool {
	keys, ok := info["key"].(bson.M)
	if !ok || len(keys) != len(spec.Keys) {
		// Text index lưu key dạng _fts/_ftsx, so theo tên là đủ
		_, isText := info["textIndexVersion"]
		return isText && len(spec.Keys) == 1 && spec.Keys[0].Value == "text"
	}

	for _, key := range spec.Keys {
		existingValue, exists := keys[key.Key]
		if !exists {
			return false
		}
		want, isInt := key.Value.(int)
		if !isInt {
			if existingValue != key.Value {
				return false
			}
			continue
		}
		switch ev := existingValue.(type) {
		case int32:
			if int(ev) != want {
				return false
			}
		case int64:
			if int(ev) != want {
				return false
			}
		case float64:
			if int(ev) != want {
				return false
			}
		default:
			return false
		}
	}

	wantUnique := spec.Options != nil && spec.Options.Unique != nil && *spec.Options.Unique
	unique, _ := info["unique"].(bool)
	if unique != wantUnique {
		return false
	}

	if spec.Options != nil && spec.Options.ExpireAfterSeconds != nil {
		ttl, ok := info["expireAfterSeconds"].(int32)
		if !ok || ttl != *spec.Options.ExpireAfterSeconds {
			return false
		}
	}
	return true
}
