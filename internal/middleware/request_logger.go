package middleware

import (
	"time"

	"app/pkg/logger"

	"github.com/labstack/echo/v4"
)

// 1リクエスト1行のアクセスログ
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.Info("request",
				logger.String("method", c.Request().Method),
				logger.String("path", c.Request().URL.Path),
				logger.Int64("status", int64(c.Response().Status)),
				logger.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return err
		}
	}
}
