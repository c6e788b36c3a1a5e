// Package router đăng ký các route tra cứu tags.
package router

import (
	"github.com/gofiber/fiber/v3"

	apirouter "doc_tagging/internal/api/router"
	taghdl "doc_tagging/internal/api/tag/handler"
)

// Register đăng ký các route /tags lên v1.
func Register(v1 fiber.Router, h *taghdl.TagHandler) {
	var middlewares []fiber.Handler

	apirouter.RegisterRouteWithMiddleware(v1, "/tags", fiber.MethodGet, "/", middlewares, h.HandleListTypes)
	apirouter.RegisterRouteWithMiddleware(v1, "/tags", fiber.MethodGet, "/:type", middlewares, h.HandleTags)
	apirouter.RegisterRouteWithMiddleware(v1, "/tags", fiber.MethodGet, "/:type/weights", middlewares, h.HandleWeights)
	apirouter.RegisterRouteWithMiddleware(v1, "/tags", fiber.MethodPost, "/:type/aggregate", middlewares, h.HandleAggregate)
}
