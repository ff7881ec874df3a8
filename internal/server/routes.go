package server

import (
	"app/internal/config"
	"app/pkg/metrics"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)

	//商品画像の配信
	e.Static("/uploads", cfg.UploadDir)

	//Prometheus
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
