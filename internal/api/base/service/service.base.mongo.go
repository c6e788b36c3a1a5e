// Package basesvc cung cấp các service cơ bản cho việc tương tác với MongoDB
package basesvc

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "doc_tagging/internal/api/base/models"
	"doc_tagging/internal/api/events"
	"doc_tagging/internal/common"
	"doc_tagging/internal/utility"
)

// UpdateData là dữ liệu update đã tách theo operator
type UpdateData struct {
	Set   map[string]interface{} `bson:"$set,omitempty"`   // Các trường cần update
	Unset map[string]interface{} `bson:"$unset,omitempty"` // Các trường cần xóa
}

// ToUpdateData chuyển đổi interface{} thành UpdateData.
// Map có sẵn $set/$unset được dùng nguyên trạng, map hoặc struct thường được bọc trong $set.
func ToUpdateData(data interface{}) (*UpdateData, error) {
	switch v := data.(type) {
	case *UpdateData:
		return v, nil
	case UpdateData:
		return &v, nil
	}

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return nil, err
	}

	_, hasSet := dataMap["$set"]
	_, hasUnset := dataMap["$unset"]
	if hasSet || hasUnset {
		update := &UpdateData{}
		if setVal, ok := dataMap["$set"].(map[string]interface{}); ok {
			update.Set = setVal
		}
		if unsetVal, ok := dataMap["$unset"].(map[string]interface{}); ok {
			update.Unset = unsetVal
		}
		return update, nil
	}

	return &UpdateData{Set: dataMap}, nil
}

// LifecycleHooks là các điểm móc vào vòng đời tài liệu.
// changedFields là danh sách field (tên bson) thực sự đổi giá trị trong lần ghi.
// Lỗi của BeforeSave hủy thao tác ghi; lỗi của After* được trả về cho caller
// nhưng thao tác ghi đã hoàn tất và không bị hoàn tác.
type LifecycleHooks[T any] interface {
	BeforeSave(ctx context.Context, doc *T, changedFields []string) error
	AfterCreate(ctx context.Context, doc *T) error
	AfterSave(ctx context.Context, doc *T, changedFields []string) error
	AfterDestroy(ctx context.Context, doc *T) error
}

// BaseServiceMongo định nghĩa các phương thức cơ bản để tương tác với MongoDB
type BaseServiceMongo[Model any] interface {
	InsertOne(ctx context.Context, data Model) (Model, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[Model], error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (Model, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

// BaseServiceMongoImpl triển khai BaseServiceMongo cho một collection
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
	hooks      LifecycleHooks[T]
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection trả về collection MongoDB
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// SetHooks gắn lifecycle hooks (ví dụ tagging) vào service
func (s *BaseServiceMongoImpl[T]) SetHooks(hooks LifecycleHooks[T]) {
	s.hooks = hooks
}

// InsertOne tạo mới một bản ghi. Mọi field của bản ghi mới được coi là thay đổi.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	if s.hooks != nil {
		fields, err := utility.ToMap(data)
		if err != nil {
			return zero, common.WithDetails(common.ErrInvalidFormat, err)
		}
		if err := s.hooks.BeforeSave(ctx, &data, utility.Keys(fields)); err != nil {
			return zero, err
		}
	}

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.WithDetails(common.ErrInvalidFormat, err)
	}

	now := time.Now().UnixMilli()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var hookErr error
	if s.hooks != nil {
		hookErr = s.hooks.AfterCreate(ctx, &created)
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpInsert,
		ResourceID:     idString(result.InsertedID),
		ChangedFields:  utility.Keys(dataMap),
		Document:       created,
	})
	return created, hookErr
}

// FindOne tìm một document theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T
	var result T

	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOne()
	}

	if err := s.collection.FindOne(ctx, filter, opts).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// Find tìm tất cả bản ghi theo điều kiện lọc, luôn trả về slice khác nil
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// CountDocuments đếm số lượng document
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// FindOneById tìm một document theo ObjectId
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// FindWithPagination tìm bản ghi với phân trang
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	opts.SetSkip((page - 1) * limit)
	opts.SetLimit(limit)

	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var totalPage int64
	if total > 0 {
		totalPage = (total + limit - 1) / limit
	}

	return &basemodels.PaginateResult[T]{
		Items:     items,
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

// UpdateById cập nhật một document theo ObjectId.
// Field thay đổi được tính bằng cách so giá trị $set với bản ghi hiện tại; hooks nhận
// bản ghi đã áp dụng $set và có thể sửa giá trị trước khi ghi.
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (T, error) {
	var zero T
	filter := bson.M{"_id": id}

	existing, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return zero, err
	}

	updateData, err := ToUpdateData(data)
	if err != nil {
		return zero, common.WithDetails(common.ErrInvalidFormat, err)
	}
	if updateData.Set == nil {
		updateData.Set = make(map[string]interface{})
	}

	existingMap, err := utility.ToMap(existing)
	if err != nil {
		return zero, common.WithDetails(common.ErrInvalidFormat, err)
	}
	changed := utility.ChangedFields(existingMap, updateData.Set)
	for key := range updateData.Unset {
		if _, ok := existingMap[key]; ok {
			changed = append(changed, key)
		}
	}

	if s.hooks != nil {
		if err := s.applyBeforeSave(ctx, existingMap, updateData, changed); err != nil {
			return zero, err
		}
	}

	updateData.Set["updatedAt"] = time.Now().UnixMilli()

	result, err := s.collection.UpdateOne(ctx, filter, updateData, options.Update().SetUpsert(false))
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return zero, common.ErrNotFound
	}

	updated, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return zero, err
	}

	var hookErr error
	if s.hooks != nil {
		hookErr = s.hooks.AfterSave(ctx, &updated, changed)
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpUpdate,
		ResourceID:     id.Hex(),
		ChangedFields:  changed,
		Document:       updated,
	})
	return updated, hookErr
}

// applyBeforeSave dựng bản ghi sau update, gọi BeforeSave rồi chép giá trị đã sửa ngược vào $set
func (s *BaseServiceMongoImpl[T]) applyBeforeSave(ctx context.Context, existingMap map[string]interface{}, updateData *UpdateData, changed []string) error {
	mergedMap := make(map[string]interface{}, len(existingMap)+len(updateData.Set))
	for k, v := range existingMap {
		mergedMap[k] = v
	}
	for k, v := range updateData.Set {
		mergedMap[k] = v
	}
	for k := range updateData.Unset {
		delete(mergedMap, k)
	}

	merged, err := utility.FromMap[T](mergedMap)
	if err != nil {
		return common.WithDetails(common.ErrInvalidFormat, err)
	}
	if err := s.hooks.BeforeSave(ctx, &merged, changed); err != nil {
		return err
	}

	afterHooks, err := utility.ToMap(merged)
	if err != nil {
		return common.WithDetails(common.ErrInvalidFormat, err)
	}
	for k := range updateData.Set {
		if v, ok := afterHooks[k]; ok {
			updateData.Set[k] = v
		}
	}
	return nil
}

// DeleteById xóa một document theo ObjectId
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.FindOne(ctx, bson.M{"_id": id}, nil)
	if err != nil {
		return err
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}

	var hookErr error
	if s.hooks != nil {
		hookErr = s.hooks.AfterDestroy(ctx, &existing)
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpDelete,
		ResourceID:     id.Hex(),
		Document:       existing,
	})
	return hookErr
}

func idString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
