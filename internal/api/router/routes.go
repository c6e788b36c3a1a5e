// Package router chứa helper đăng ký route dùng chung cho các domain router.
package router

import "github.com/gofiber/fiber/v3"

// RegisterRouteWithMiddleware đăng ký một route trong group prefix.
// Middleware chỉ áp dụng cho các route của group đó.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case fiber.MethodGet:
		routeGroup.Get(path, handler)
	case fiber.MethodPost:
		routeGroup.Post(path, handler)
	case fiber.MethodPut:
		routeGroup.Put(path, handler)
	case fiber.MethodDelete:
		routeGroup.Delete(path, handler)
	}
}
