// Package router đăng ký các route thuộc domain content: articles.
package router

import (
	"github.com/gofiber/fiber/v3"

	articlehdl "doc_tagging/internal/api/article/handler"
	apirouter "doc_tagging/internal/api/router"
)

// Register đăng ký tất cả route bài viết lên v1.
func Register(v1 fiber.Router, h *articlehdl.ArticleHandler) {
	var middlewares []fiber.Handler

	apirouter.RegisterRouteWithMiddleware(v1, "/articles", fiber.MethodPost, "/", middlewares, h.HandleCreate)
	// /tagged phải đăng ký trước /:id
	apirouter.RegisterRouteWithMiddleware(v1, "/articles", fiber.MethodGet, "/tagged", middlewares, h.HandleTagged)
	apirouter.RegisterRouteWithMiddleware(v1, "/articles", fiber.MethodGet, "/:id", middlewares, h.HandleGet)
	apirouter.RegisterRouteWithMiddleware(v1, "/articles", fiber.MethodPut, "/:id", middlewares, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/articles", fiber.MethodDelete, "/:id", middlewares, h.HandleDelete)
}
