// Package articlehdl - Handler bài viết và review.
package articlehdl

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	articledto "doc_tagging/internal/api/article/dto"
	articlemodels "doc_tagging/internal/api/article/models"
	articlesvc "doc_tagging/internal/api/article/service"
	basehdl "doc_tagging/internal/api/base/handler"
	basemodels "doc_tagging/internal/api/base/models"
	"doc_tagging/internal/common"
	"doc_tagging/internal/global"
)

// ArticleService là các thao tác handler cần từ service
type ArticleService interface {
	Create(ctx context.Context, input *articledto.ArticleCreateInput) (*articlemodels.Article, error)
	Get(ctx context.Context, id primitive.ObjectID) (*articlemodels.Article, error)
	Update(ctx context.Context, id primitive.ObjectID, input *articledto.ArticleUpdateInput) (*articlemodels.Article, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindTaggedWith(ctx context.Context, kind string, tags interface{}, page, limit int64) (*basemodels.PaginateResult[articlemodels.Article], error)
}

// ArticleHandler xử lý CRUD bài viết và truy vấn theo tags
type ArticleHandler struct {
	Service ArticleService
}

// NewArticleHandler tạo ArticleHandler với service từ global
func NewArticleHandler() (*ArticleHandler, error) {
	svc, err := articlesvc.NewArticleService()
	if err != nil {
		return nil, fmt.Errorf("tạo ArticleService: %w", err)
	}
	return &ArticleHandler{Service: svc}, nil
}

// HandleCreate xử lý POST /articles
func (h *ArticleHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input articledto.ArticleCreateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.WithDetails(common.ErrInvalidFormat, "Dữ liệu gửi lên không đúng định dạng JSON"))
		}
		if err := global.Validate.Struct(input); err != nil {
			return basehdl.HandleResponse(c, nil, common.WithDetails(common.ErrInvalidInput, err.Error()))
		}

		doc, err := h.Service.Create(c.Context(), &input)
		return respondMutation(c, common.StatusCreated, common.MsgCreated, doc, err)
	})
}

// HandleGet xử lý GET /articles/:id
func (h *ArticleHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		doc, err := h.Service.Get(c.Context(), id)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, toArticleResponse(doc), nil)
	})
}

// HandleUpdate xử lý PUT /articles/:id
func (h *ArticleHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input articledto.ArticleUpdateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.WithDetails(common.ErrInvalidFormat, "Dữ liệu gửi lên không đúng định dạng JSON"))
		}
		if err := global.Validate.Struct(input); err != nil {
			return basehdl.HandleResponse(c, nil, common.WithDetails(common.ErrInvalidInput, err.Error()))
		}

		doc, err := h.Service.Update(c.Context(), id, &input)
		return respondMutation(c, common.StatusOK, common.MsgSuccess, doc, err)
	})
}

// HandleDelete xử lý DELETE /articles/:id
func (h *ArticleHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		err = h.Service.Delete(c.Context(), id)
		if errors.Is(err, common.ErrAggregationFailed) {
			return respondMutation(c, common.StatusOK, common.MsgSuccess, nil, err)
		}
		return basehdl.HandleResponse(c, nil, err)
	})
}

// HandleTagged xử lý GET /articles/tagged?tags=a,b&kind=review&page=1&limit=20
func (h *ArticleHandler) HandleTagged(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		kind := c.Query("kind")
		if kind != "" && kind != articlemodels.KindArticle && kind != articlemodels.KindReview {
			return basehdl.HandleResponse(c, nil, common.WithDetails(common.ErrInvalidInput, "kind chỉ nhận article hoặc review"))
		}
		tags := c.Query("tags")
		if tags == "" {
			return basehdl.HandleResponse(c, nil, common.WithDetails(common.ErrRequiredField, "tags"))
		}
		page := queryInt64(c, "page", 1)
		limit := queryInt64(c, "limit", 20)

		result, err := h.Service.FindTaggedWith(c.Context(), kind, tags, page, limit)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		items := make([]articledto.ArticleResponse, 0, len(result.Items))
		for i := range result.Items {
			items = append(items, *toArticleResponse(&result.Items[i]))
		}
		return basehdl.HandleResponse(c, basemodels.PaginateResult[articledto.ArticleResponse]{
			Items:     items,
			Page:      result.Page,
			Limit:     result.Limit,
			ItemCount: result.ItemCount,
			Total:     result.Total,
			TotalPage: result.TotalPage,
		}, nil)
	})
}

// respondMutation trả về kết quả ghi. Khi chỉ bước tính lại bảng tổng hợp thất bại,
// thao tác ghi đã hoàn tất nên response vẫn kèm tài liệu.
func respondMutation(c fiber.Ctx, status int, message string, doc *articlemodels.Article, err error) error {
	if err != nil && errors.Is(err, common.ErrAggregationFailed) {
		var customErr *common.Error
		errors.As(err, &customErr)
		return basehdl.JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": err.Error(),
			"data":    toArticleResponse(doc),
			"status":  "error",
		})
	}
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponseWithStatus(c, status, message, toArticleResponse(doc), nil)
}

func toArticleResponse(a *articlemodels.Article) *articledto.ArticleResponse {
	if a == nil {
		return nil
	}
	tags := a.Tags.Strings()
	return &articledto.ArticleResponse{
		ID:        a.ID.Hex(),
		Kind:      a.Kind,
		Title:     a.Title,
		Body:      a.Body,
		Tags:      tags,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func queryInt64(c fiber.Ctx, key string, def int64) int64 {
	if s := c.Query(key); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}
