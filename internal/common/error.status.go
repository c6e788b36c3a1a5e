package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	StatusBadRequest          = 400 // Yêu cầu không hợp lệ
	StatusNotFound            = 404 // Không tìm thấy tài nguyên
	StatusConflict            = 409 // Xung đột dữ liệu
	StatusTooManyRequests     = 429 // Quá nhiều yêu cầu
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	MsgSuccess       = "Thao tác thành công"
	MsgCreated       = "Tạo mới thành công"
	MsgBadRequest    = "Yêu cầu không hợp lệ"
	MsgNotFound      = "Không tìm thấy tài nguyên"
	MsgInternalError = "Lỗi hệ thống"

	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"

	// Tagging Messages
	MsgTagInvalidInputKind = "Giá trị tags phải là chuỗi hoặc danh sách chuỗi"
	MsgTagAggregation      = "Không thể tính lại bảng tổng hợp tags"
	MsgTagNotConfigured    = "Loại tài liệu chưa được đăng ký tagging"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: TAG_001)
	Category    string // Phân loại lỗi (ví dụ: Tagging)
	SubCategory string // Phân loại con (ví dụ: Input)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	// Tagging Errors (TAG_xxx)
	ErrCodeTagInput = ErrorCode{
		Code:        "TAG_001",
		Category:    "Tagging",
		SubCategory: "Input",
		Description: "Kiểu dữ liệu tags không hợp lệ",
	}

	ErrCodeTagAggregation = ErrorCode{
		Code:        "TAG_002",
		Category:    "Tagging",
		SubCategory: "Aggregation",
		Description: "Lỗi khi tính bảng tổng hợp tags",
	}

	ErrCodeTagNotConfigured = ErrorCode{
		Code:        "TAG_003",
		Category:    "Tagging",
		SubCategory: "Registration",
		Description: "Loại tài liệu chưa đăng ký tagging",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	if cause, ok := e.Details.(error); ok && cause != nil {
		return e.Message + ": " + cause.Error()
	}
	return e.Message
}

// Is so sánh theo mã lỗi và message, để errors.Is(err, ErrNotFound) hoạt động với bản sao có Details.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// Unwrap trả về lỗi gốc nếu Details là error
func (e *Error) Unwrap() error {
	if cause, ok := e.Details.(error); ok {
		return cause
	}
	return nil
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// WithDetails tạo bản sao của lỗi chuẩn kèm details (thường là lỗi gốc).
// Bản sao vẫn khớp errors.Is với lỗi chuẩn.
func WithDetails(base error, details any) error {
	var e *Error
	if !errors.As(base, &e) {
		return base
	}
	return NewError(e.Code, e.Message, e.StatusCode, details)
}

// Custom errors
var (
	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối cơ sở dữ liệu", StatusServiceUnavailable, nil)

	// Tagging Errors
	ErrInvalidInputKind  = NewError(ErrCodeTagInput, MsgTagInvalidInputKind, StatusBadRequest, nil)
	ErrAggregationFailed = NewError(ErrCodeTagAggregation, MsgTagAggregation, StatusInternalServerError, nil)
	ErrNotConfigured     = NewError(ErrCodeTagNotConfigured, MsgTagNotConfigured, StatusNotFound, nil)
)

// MongoDB Specific Errors
var (
	ErrMongoNetwork   = NewError(ErrCodeDatabaseConnection, "Lỗi mạng khi kết nối MongoDB", StatusServiceUnavailable, nil)
	ErrMongoTimeout   = NewError(ErrCodeDatabaseConnection, "Kết nối MongoDB bị timeout", StatusServiceUnavailable, nil)
	ErrMongoQuery     = NewError(ErrCodeDatabaseQuery, "Lỗi truy vấn MongoDB", StatusInternalServerError, nil)
	ErrMongoWrite     = NewError(ErrCodeDatabaseQuery, "Lỗi ghi dữ liệu MongoDB", StatusInternalServerError, nil)
	ErrMongoDuplicate = NewError(ErrCodeDatabaseQuery, "Dữ liệu trùng lặp trong MongoDB", StatusConflict, nil)
	ErrMongoSystem    = NewError(ErrCodeDatabase, "Lỗi hệ thống MongoDB", StatusInternalServerError, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi đã được chuẩn hóa thì giữ nguyên
	var known *Error
	if errors.As(err, &known) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return WithDetails(ErrMongoDuplicate, err)
	}
	if mongo.IsNetworkError(err) {
		return WithDetails(ErrMongoNetwork, err)
	}
	if mongo.IsTimeout(err) {
		return WithDetails(ErrMongoTimeout, err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch {
		case cmdErr.Code >= 300 && cmdErr.Code < 400:
			return WithDetails(ErrMongoQuery, err)
		case cmdErr.Code >= 400 && cmdErr.Code < 500:
			return WithDetails(ErrMongoWrite, err)
		default:
			return WithDetails(ErrMongoSystem, err)
		}
	}

	// Nếu không tìm thấy lỗi cụ thể, trả về lỗi hệ thống chung
	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
