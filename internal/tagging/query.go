package tagging

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Query là một truy vấn chưa thực thi, ghép được thêm điều kiện.
// Người gọi truyền Filter() và FindOptions() cho base service Find.
type Query struct {
	clauses []bson.M
	sort    bson.D
	limit   int64
	skip    int64
}

// NewQuery tạo truy vấn rỗng
func NewQuery() *Query {
	return &Query{}
}

// TaggedWith tạo truy vấn lấy các tài liệu chứa tất cả tags đã cho.
// Chuỗi được tách theo separator và trim; danh sách dùng nguyên trạng.
func (t *Taggable) TaggedWith(tags any) (*Query, error) {
	cfg := t.config.Load()
	list, err := Split(tags, cfg.Separator)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return NewQuery().Where(cfg.TagsField, bson.M{"$all": list}), nil
}

// Where thêm điều kiện field = value (value có thể là toán tử như bson.M{"$gt": 1})
func (q *Query) Where(field string, value interface{}) *Query {
	q.clauses = append(q.clauses, bson.M{field: value})
	return q
}

// And thêm một điều kiện tùy ý
func (q *Query) And(cond bson.M) *Query {
	if len(cond) > 0 {
		q.clauses = append(q.clauses, cond)
	}
	return q
}

// Sort thêm thứ tự sắp xếp (1 tăng, -1 giảm)
func (q *Query) Sort(field string, order int) *Query {
	q.sort = append(q.sort, bson.E{Key: field, Value: order})
	return q
}

// Limit giới hạn số kết quả
func (q *Query) Limit(n int64) *Query {
	q.limit = n
	return q
}

// Skip bỏ qua n kết quả đầu
func (q *Query) Skip(n int64) *Query {
	q.skip = n
	return q
}

// Filter trả về filter Mongo: một điều kiện thì trả thẳng, nhiều điều kiện thì ghép bằng $and
func (q *Query) Filter() bson.M {
	switch len(q.clauses) {
	case 0:
		return bson.M{}
	case 1:
		return q.clauses[0]
	default:
		and := make(bson.A, len(q.clauses))
		for i, c := range q.clauses {
			and[i] = c
		}
		return bson.M{"$and": and}
	}
}

// FindOptions trả về option sort/limit/skip
func (q *Query) FindOptions() *options.FindOptions {
	opts := options.Find()
	if len(q.sort) > 0 {
		opts.SetSort(q.sort)
	}
	if q.limit > 0 {
		opts.SetLimit(q.limit)
	}
	if q.skip > 0 {
		opts.SetSkip(q.skip)
	}
	return opts
}
