package utility

import (
	"bytes"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển struct (hoặc map) thành map theo tên field bson
func ToMap(s interface{}) (map[string]interface{}, error) {
	var out map[string]interface{}
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return out, nil
}

// FromMap chuyển map ngược lại thành struct T
func FromMap[T any](m map[string]interface{}) (T, error) {
	var out T
	raw, err := bson.Marshal(m)
	if err != nil {
		return out, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return out, nil
}

// ValuesEqual so sánh hai giá trị theo biểu diễn BSON,
// nên primitive.A{"a"} và []string{"a"} được coi là bằng nhau.
func ValuesEqual(a, b interface{}) bool {
	ra, errA := bson.Marshal(bson.D{{Key: "v", Value: a}})
	rb, errB := bson.Marshal(bson.D{{Key: "v", Value: b}})
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ra, rb)
}

// ChangedFields trả về các key trong set có giá trị khác với current, sắp xếp tăng dần.
// Key không có trong current được coi là thay đổi.
func ChangedFields(current map[string]interface{}, set map[string]interface{}) []string {
	changed := make([]string, 0, len(set))
	for key, value := range set {
		old, exists := current[key]
		if !exists || !ValuesEqual(old, value) {
			changed = append(changed, key)
		}
	}
	sort.Strings(changed)
	return changed
}

// Keys trả về các key của map, sắp xếp tăng dần
func Keys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
