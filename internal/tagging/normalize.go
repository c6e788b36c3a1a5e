package tagging

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"doc_tagging/internal/common"
)

// Normalize chuyển input thô (chuỗi hoặc danh sách chuỗi) thành TagList.
//
// Chuỗi được tách theo separator (so khớp nguyên văn, không phải regex), mỗi phần
// được gộp khoảng trắng liên tiếp thành một dấu cách và trim, phần rỗng bị bỏ.
// Danh sách được xử lý từng phần tử theo quy tắc trên rồi nối theo thứ tự, nên một
// phần tử chứa separator sẽ sinh ra nhiều tag. Cuối cùng loại trùng không phân biệt
// hoa thường, giữ cách viết và vị trí của lần xuất hiện đầu tiên.
//
// Input không phải chuỗi hoặc danh sách chuỗi trả về common.ErrInvalidInputKind.
func Normalize(input any, separator string) (TagList, error) {
	pieces, err := toStrings(input)
	if err != nil {
		return nil, err
	}
	sep := separatorOrDefault(separator)

	var tags []string
	for _, piece := range pieces {
		tags = append(tags, splitAndClean(piece, sep)...)
	}
	return Dedup(tags), nil
}

// Dedup chỉ loại trùng không phân biệt hoa thường, không tách lại.
// Dùng cho lượt kiểm tra trước khi lưu, khi danh sách có thể đã bị sửa trực tiếp.
func Dedup(tags []string) TagList {
	seen := make(map[string]struct{}, len(tags))
	out := make(TagList, 0, len(tags))
	for _, tag := range tags {
		key := foldKey(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Split chỉ tách, dùng cho truy vấn: chuỗi được tách theo separator và trim,
// danh sách được dùng nguyên trạng.
func Split(input any, separator string) ([]string, error) {
	switch v := input.(type) {
	case string:
		var out []string
		for _, part := range strings.Split(v, separatorOrDefault(separator)) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return toStrings(input)
	}
}

// splitAndClean tách một chuỗi theo separator, gộp khoảng trắng và bỏ phần rỗng
func splitAndClean(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		// strings.Fields + Join: gộp mọi khoảng trắng liên tiếp và trim hai đầu
		cleaned := strings.Join(strings.Fields(part), " ")
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// toStrings chấp nhận string, []string, TagList, []interface{} và primitive.A chỉ chứa chuỗi
func toStrings(input any) ([]string, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case TagList:
		return v, nil
	case []interface{}:
		return interfacesToStrings(v)
	case primitive.A:
		return interfacesToStrings(v)
	default:
		return nil, common.WithDetails(common.ErrInvalidInputKind, fmt.Sprintf("kiểu nhận được: %T", input))
	}
}

func interfacesToStrings(values []interface{}) ([]string, error) {
	out := make([]string, 0, len(values))
	for i, item := range values {
		s, ok := item.(string)
		if !ok {
			return nil, common.WithDetails(common.ErrInvalidInputKind, fmt.Sprintf("phần tử %d có kiểu %T", i, item))
		}
		out = append(out, s)
	}
	return out, nil
}

func separatorOrDefault(separator string) string {
	if separator == "" {
		return DefaultSeparator
	}
	return separator
}
