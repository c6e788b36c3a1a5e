package global

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"doc_tagging/internal/tagging"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("tag_input", validateTagInput)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerhtml",
		"fromcharcode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateTagInput chỉ nhận chuỗi hoặc danh sách chuỗi, và không tag nào chứa ký tự nguy hiểm
func validateTagInput(fl validator.FieldLevel) bool {
	field := fl.Field()
	if !field.IsValid() {
		return true
	}
	tags, err := tagging.Normalize(field.Interface(), tagging.DefaultSeparator)
	if err != nil {
		return false
	}
	for _, tag := range tags {
		if strings.ContainsAny(tag, "<>") {
			return false
		}
	}
	return true
}
