package tagging

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"doc_tagging/internal/common"
)

// MongoStore thực thi Store trên một *mongo.Collection.
// Bảng tổng hợp nằm cùng database với collection gốc.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore tạo store cho collection
func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

// CollectionName trả về tên collection
func (s *MongoStore) CollectionName() string {
	return s.collection.Name()
}

// Collection trả về collection gốc (dùng cho base service và index)
func (s *MongoStore) Collection() *mongo.Collection {
	return s.collection
}

// RecomputeTagCounts chạy pipeline $unwind/$group rồi $out sang collection out.
// $out thay thế collection đích một lần khi pipeline hoàn tất, người đọc không bao giờ
// thấy bảng tổng hợp ở trạng thái dở dang.
func (s *MongoStore) RecomputeTagCounts(ctx context.Context, field, out string, opts map[string]interface{}) error {
	aggOpts, err := BuildAggregateOptions(opts)
	if err != nil {
		return err
	}

	cursor, err := s.collection.Aggregate(ctx, BuildTagCountPipeline(field, out), aggOpts)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	// $out không trả document nào, chỉ cần đóng cursor
	return cursor.Close(ctx)
}

// ReadTagCounts đọc bảng tổng hợp theo thứ tự _id tăng dần
func (s *MongoStore) ReadTagCounts(ctx context.Context, out string) ([]TagWeight, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.collection.Database().Collection(out).Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := make([]TagWeight, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// BuildTagCountPipeline tạo pipeline đếm số tài liệu theo từng tag.
// Tài liệu không có field hoặc field không phải mảng bị bỏ qua.
func BuildTagCountPipeline(field, out string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: field, Value: bson.D{
			{Key: "$exists", Value: true},
			{Key: "$type", Value: "array"},
		}}}}},
		{{Key: "$unwind", Value: "$" + field}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "value", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$out", Value: out}},
	}
}

// BuildAggregateOptions chuyển map option đã đăng ký sang *options.AggregateOptions.
// Key hỗ trợ: allowDiskUse, maxTimeMS, comment, batchSize. Key lạ bị từ chối.
func BuildAggregateOptions(opts map[string]interface{}) (*options.AggregateOptions, error) {
	aggOpts := options.Aggregate()
	for key, raw := range opts {
		switch key {
		case "allowDiskUse":
			v, ok := raw.(bool)
			if !ok {
				return nil, invalidOption(key, raw)
			}
			aggOpts.SetAllowDiskUse(v)
		case "maxTimeMS":
			v, ok := toInt64(raw)
			if !ok {
				return nil, invalidOption(key, raw)
			}
			aggOpts.SetMaxTime(time.Duration(v) * time.Millisecond)
		case "comment":
			v, ok := raw.(string)
			if !ok {
				return nil, invalidOption(key, raw)
			}
			aggOpts.SetComment(v)
		case "batchSize":
			v, ok := toInt64(raw)
			if !ok {
				return nil, invalidOption(key, raw)
			}
			aggOpts.SetBatchSize(int32(v))
		default:
			return nil, common.WithDetails(common.ErrInvalidInput, fmt.Sprintf("aggregation option không hỗ trợ: %s", key))
		}
	}
	return aggOpts, nil
}

func invalidOption(key string, raw interface{}) error {
	return common.WithDetails(common.ErrInvalidFormat, fmt.Sprintf("aggregation option %s có kiểu %T", key, raw))
}

func toInt64(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
