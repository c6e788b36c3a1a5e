package tagging

import "strings"

// TagList là danh sách tags đã chuẩn hóa của một tài liệu: không rỗng, đã trim,
// không trùng lặp khi so sánh không phân biệt hoa thường, giữ thứ tự xuất hiện đầu tiên.
type TagList []string

// Contains kiểm tra tag có trong danh sách (không phân biệt hoa thường)
func (l TagList) Contains(tag string) bool {
	key := foldKey(tag)
	for _, t := range l {
		if foldKey(t) == key {
			return true
		}
	}
	return false
}

// foldKey là quy tắc so sánh không phân biệt hoa thường duy nhất, dùng chung cho Dedup và Contains
func foldKey(tag string) string {
	return strings.ToLower(tag)
}

// Equal so sánh chính xác từng phần tử và thứ tự.
// Dùng để xác định field tags có thay đổi so với lúc load hay không.
func (l TagList) Equal(other TagList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Strings trả về bản sao dạng []string
func (l TagList) Strings() []string {
	out := make([]string, len(l))
	copy(out, l)
	return out
}

// Join ghép danh sách lại thành dạng text với separator
func (l TagList) Join(separator string) string {
	return strings.Join(l, separator)
}
