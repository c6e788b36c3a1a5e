// Package basehdl chứa các helper dùng chung cho handler: response chuẩn, recover, parse tham số.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"doc_tagging/internal/common"
	"doc_tagging/internal/logger"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandlerWrapper bọc handler với recover, đảm bảo luôn có response kể cả khi panic
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).Error("Panic trong handler")
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"path":  c.Path(),
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Panic trong handler")
			err = HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleResponse chuẩn hóa response: lỗi *common.Error giữ mã và status của nó,
// lỗi khác trả về 500.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	return HandleResponseWithStatus(c, common.StatusOK, common.MsgSuccess, data, err)
}

// HandleResponseWithStatus giống HandleResponse nhưng cho phép đổi status và message khi thành công
func HandleResponseWithStatus(c fiber.Ctx, status int, message string, data interface{}, err error) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			if customErr.StatusCode >= common.StatusInternalServerError {
				logger.WithRequest(c).WithError(err).Error("Request thất bại")
			}
			return JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": errorDetails(customErr.Details),
				"status":  "error",
			})
		}
		logger.WithRequest(c).WithError(err).Error("Request thất bại")
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	return JSONResponse(c, status, fiber.Map{
		"code":    status,
		"message": message,
		"data":    data,
		"status":  "success",
	})
}

// ParseObjectIDParam đọc path param dạng ObjectID
func ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	raw := c.Params(name)
	if raw == "" {
		return primitive.NilObjectID, common.WithDetails(common.ErrRequiredField, name)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.WithDetails(common.ErrInvalidFormat, fmt.Sprintf("%s không hợp lệ", name))
	}
	return id, nil
}

// errorDetails đưa details về dạng JSON được: error thành chuỗi
func errorDetails(details any) any {
	if err, ok := details.(error); ok {
		return err.Error()
	}
	return details
}
