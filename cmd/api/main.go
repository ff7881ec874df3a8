package main

import (
	"os"

	"app/internal/auth"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/pkg/logger"
	"app/pkg/metrics"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewZapLogger(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("db connect failed", logger.Error(err))
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartEntry{},
		&model.Order{},
		&model.OrderLine{},
	); err != nil {
		log.Error("migrate failed", logger.Error(err))
		os.Exit(1)
	}

	//画像保存先
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Error("upload dir create failed", logger.Error(err))
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	issuer := auth.NewJWTIssuer(cfg)
	hasher := usecase.NewBcryptHasher(12)

	authUC := usecase.NewAuthUsecase(userRepo, hasher, issuer)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)

	//Handler生成
	checkoutMetrics := metrics.NewCheckoutMetrics()

	h := server.Handlers{
		Auth:    handler.NewAuthHandler(authUC),
		Product: handler.NewProductHandler(productUC, orderUC, cfg.UploadDir),
		Cart:    handler.NewCartHandler(cartUC),
		Order:   handler.NewOrderHandler(orderUC, checkoutMetrics),
	}

	//Server起動
	if err := server.Start(cfg, log, h); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}
