package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているis_adminを確認する。AuthJWTの後段に置くこと。

func AdminGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, ok := c.Get(CtxIsAdminKey).(bool)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//一般ユーザーは拒否
			if !isAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
