package basehdl

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc_tagging/internal/common"
)

func call(t *testing.T, handler fiber.Handler, target string) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/items/:id", handler)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleResponse_Success(t *testing.T) {
	status, body := call(t, func(c fiber.Ctx) error {
		return HandleResponse(c, fiber.Map{"tags": []string{"a"}}, nil)
	}, "/items/1")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(http.StatusOK), body["code"])
	assert.NotNil(t, body["data"])
}

func TestHandleResponse_CustomError(t *testing.T) {
	status, body := call(t, func(c fiber.Ctx) error {
		return HandleResponse(c, nil, common.WithDetails(common.ErrInvalidInputKind, errors.New("int")))
	}, "/items/1")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "TAG_001", body["code"])
	assert.Equal(t, "int", body["details"])
	assert.Equal(t, "error", body["status"])
}

func TestHandleResponse_PlainError(t *testing.T) {
	status, body := call(t, func(c fiber.Ctx) error {
		return HandleResponse(c, nil, errors.New("boom"))
	}, "/items/1")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, common.ErrCodeInternalServer.Code, body["code"])
}

func TestSafeHandlerWrapper_RecoversPanic(t *testing.T) {
	status, body := call(t, func(c fiber.Ctx) error {
		return SafeHandlerWrapper(c, func() error {
			panic("unexpected")
		})
	}, "/items/1")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, common.ErrCodeInternalServer.Code, body["code"])
}

func TestParseObjectIDParam(t *testing.T) {
	status, body := call(t, func(c fiber.Ctx) error {
		_, err := ParseObjectIDParam(c, "id")
		return HandleResponse(c, nil, err)
	}, "/items/xyz")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, body["code"])

	status, _ = call(t, func(c fiber.Ctx) error {
		id, err := ParseObjectIDParam(c, "id")
		return HandleResponse(c, id.Hex(), err)
	}, "/items/65f1a2b3c4d5e6f708091a2b")
	assert.Equal(t, http.StatusOK, status)
}
