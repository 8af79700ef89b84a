package server

import (
	"gharplans/internal/domain/model"
	"gharplans/internal/handler"
	"gharplans/internal/middleware"
	"gharplans/internal/repository"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Category     *handler.CategoryHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Review       *handler.ReviewHandler
	UTM          *handler.UTMHandler
}

func RegisterRoutes(e *echo.Echo, jwtSecret string, userRepo repository.UserRepository, h Handlers) {
	authn := []echo.MiddlewareFunc{
		middleware.AuthJWT(jwtSecret),
		middleware.ActiveUserGuard(userRepo),
	}
	withRole := func(roles ...model.Role) []echo.MiddlewareFunc {
		return append(append([]echo.MiddlewareFunc{}, authn...), middleware.RoleGuard(roles...))
	}
	admin := append(append([]echo.MiddlewareFunc{}, authn...), middleware.AdminRoleGuard())

	h.Auth.RegisterRoutes(e)
	h.Category.RegisterRoutes(e, admin...)
	h.Product.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e, admin...)
	h.Cart.RegisterRoutes(e)
	h.Order.RegisterRoutes(e, admin...)
	h.Review.RegisterRoutes(e, handler.ReviewGuards{
		User:        withRole(model.RoleUser),
		UserOrAdmin: withRole(model.RoleUser, model.RoleAdmin),
		Admin:       admin,
	})
	h.UTM.RegisterRoutes(e, admin...)
}
