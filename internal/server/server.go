package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"
	"app/pkg/logger"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
}

func Start(cfg config.Config, log logger.Logger, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger(log))

	RegisterRoutes(e, cfg, h)

	addr := ":" + cfg.Port
	log.Info("server starting", logger.String("addr", addr))
	return e.Start(addr)
}
