package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gharplans/internal/config"
	"gharplans/internal/infra/db"
	infraRepo "gharplans/internal/infra/repository"
	"gharplans/internal/server"
	auth "gharplans/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	//.envは無くてもよい（本番は環境変数）
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	e := server.New(cfg.GoEnv == "dev")

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		e.Logger.Fatal(err)
	}
	if err := db.Migrate(gormDB); err != nil {
		e.Logger.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//管理者を用意
	if cfg.SeedAdmin() {
		hasher := auth.NewBcryptPasswords(cfg.BcryptCost)
		created, err := auth.NewEnsureAdminUsecase(userRepo, hasher).Execute(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			e.Logger.Fatal(err)
		}
		if created {
			e.Logger.Infof("admin user created: %s", cfg.AdminEmail)
		}
	}

	//Usecase/Handler生成
	server.Wire(e, server.Repositories{
		Users:      userRepo,
		Categories: infraRepo.NewCategoryGormRepository(gormDB),
		Products:   infraRepo.NewProductGormRepository(gormDB),
		CartItems:  infraRepo.NewCartGormRepository(gormDB),
		Orders:     infraRepo.NewOrderGormRepository(gormDB),
		AuditLogs:  infraRepo.NewAuditLogGormRepository(gormDB),
		Reviews:    infraRepo.NewReviewGormRepository(gormDB),
		UTMLinks:   infraRepo.NewUTMLinkGormRepository(gormDB),
		Tx:         infraRepo.NewTxManagerGorm(gormDB),
	}, server.Options{
		JWTSecret:     cfg.JWTSecret,
		JWTTTL:        cfg.JWTTTL,
		BcryptCost:    cfg.BcryptCost,
		OrderIDPrefix: cfg.OrderIDPrefix,
	})

	//Server起動
	if err := server.Start(ctx, e, cfg.Addr()); err != nil {
		e.Logger.Fatal(err)
	}
}
