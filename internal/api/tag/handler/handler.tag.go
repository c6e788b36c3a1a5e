// Package taghdl - Handler tra cứu và tính lại bảng tổng hợp tags theo loại tài liệu.
package taghdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "doc_tagging/internal/api/base/handler"
	tagdto "doc_tagging/internal/api/tag/dto"
	"doc_tagging/internal/common"
	"doc_tagging/internal/tagging"
)

// TagHandler đọc registry tagging để phục vụ các route /tags
type TagHandler struct {
	Registry *tagging.Registry
}

// NewTagHandler tạo TagHandler
func NewTagHandler(reg *tagging.Registry) (*TagHandler, error) {
	if reg == nil {
		return nil, common.WithDetails(common.ErrNotConfigured, "tagging registry")
	}
	return &TagHandler{Registry: reg}, nil
}

// HandleListTypes xử lý GET /tags: các loại đã đăng ký và cấu hình của chúng
func (h *TagHandler) HandleListTypes(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		all := h.Registry.All()
		out := make([]tagdto.TaggableResponse, 0, len(all))
		for _, t := range all {
			cfg := t.Config()
			out = append(out, tagdto.TaggableResponse{
				Type:               t.TypeName(),
				ParentType:         t.ParentType(),
				Collection:         t.CollectionName(),
				AggregationTarget:  t.AggregationCollectionName(),
				TagsField:          cfg.TagsField,
				Separator:          cfg.Separator,
				AggregationEnabled: cfg.AggregationEnabled,
				AggregationOptions: cfg.AggregationOptions,
			})
		}
		return basehdl.HandleResponse(c, out, nil)
	})
}

// HandleTags xử lý GET /tags/:type
func (h *TagHandler) HandleTags(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		t, err := h.Registry.Get(c.Params("type"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		tags, err := t.Tags(c.Context())
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ConvertMongoError(err))
		}
		return basehdl.HandleResponse(c, tagdto.TagsResponse{
			Type:       t.TypeName(),
			Collection: t.AggregationCollectionName(),
			Tags:       tags,
		}, nil)
	})
}

// HandleWeights xử lý GET /tags/:type/weights
func (h *TagHandler) HandleWeights(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		t, err := h.Registry.Get(c.Params("type"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		weights, err := t.TagsWithWeight(c.Context())
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ConvertMongoError(err))
		}
		return basehdl.HandleResponse(c, tagdto.TagWeightsResponse{
			Type:       t.TypeName(),
			Collection: t.AggregationCollectionName(),
			Weights:    weights,
		}, nil)
	})
}

// HandleAggregate xử lý POST /tags/:type/aggregate: tính lại ngay, không phụ thuộc cờ bật tổng hợp
func (h *TagHandler) HandleAggregate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		t, err := h.Registry.Get(c.Params("type"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := t.Aggregate(c.Context()); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		weights, err := t.TagsWithWeight(c.Context())
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.ConvertMongoError(err))
		}
		return basehdl.HandleResponse(c, tagdto.TagWeightsResponse{
			Type:       t.TypeName(),
			Collection: t.AggregationCollectionName(),
			Weights:    weights,
		}, nil)
	})
}
