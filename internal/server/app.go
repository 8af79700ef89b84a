package server

import (
	"time"

	"gharplans/internal/handler"
	"gharplans/internal/repository"
	"gharplans/internal/usecase"
	auth "gharplans/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// ルーティングに必要な永続化の実装一式
type Repositories struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	CartItems  repository.CartItemRepository
	Orders     repository.OrderRepository
	AuditLogs  repository.AuditLogRepository
	Reviews    repository.ReviewRepository
	UTMLinks   repository.UTMLinkRepository
	Tx         repository.TransactionManager
}

type Options struct {
	JWTSecret     string
	JWTTTL        time.Duration
	BcryptCost    int
	OrderIDPrefix string
	Clock         usecase.Clock
}

// usecase/handlerを組み立ててeに登録する
func Wire(e *echo.Echo, r Repositories, opt Options) {
	clock := opt.Clock
	if clock == nil {
		clock = usecase.SystemClock{}
	}

	passwords := auth.NewBcryptPasswords(opt.BcryptCost)
	issuer := auth.NewJWTIssuer(opt.JWTSecret, opt.JWTTTL)

	registerUC := auth.NewRegisterUserUsecase(r.Users, passwords)
	loginUC := auth.NewLoginUsecase(r.Users, passwords, issuer, clock)
	productUC := usecase.NewProductUsecase(r.Products, r.Categories)
	orderUC := usecase.NewOrderUsecase(
		r.Tx,
		r.Orders,
		r.Users,
		r.AuditLogs,
		usecase.NewRandomOrderIDGenerator(opt.OrderIDPrefix, clock),
	)

	RegisterRoutes(e, opt.JWTSecret, r.Users, Handlers{
		Auth:         handler.NewAuthHandler(registerUC, loginUC),
		Category:     handler.NewCategoryHandler(usecase.NewCategoryUsecase(r.Categories)),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Cart:         handler.NewCartHandler(usecase.NewCartUsecase(r.CartItems, r.Products)),
		Order:        handler.NewOrderHandler(orderUC),
		Review:       handler.NewReviewHandler(usecase.NewReviewUsecase(r.Reviews, r.Products)),
		UTM:          handler.NewUTMHandler(usecase.NewUTMUsecase(r.UTMLinks)),
	})
}
