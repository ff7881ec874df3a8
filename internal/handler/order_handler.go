package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"
	"app/pkg/metrics"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc  *usecase.OrderUsecase
	met *metrics.CheckoutMetrics
}

func NewOrderHandler(uc *usecase.OrderUsecase, met *metrics.CheckoutMetrics) *OrderHandler {
	return &OrderHandler{uc: uc, met: met}
}

type CheckoutRequest struct {
	Address string `json:"address"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/checkout", h.checkout)
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.detail)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		Address: req.Address,
	})
	h.observe(err)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// チェックアウトの結果を種類別にカウントする
func (h *OrderHandler) observe(err error) {
	if h.met == nil {
		return
	}
	if err == nil {
		h.met.Observe("success")
		return
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		switch he.Message {
		case "insufficient stock":
			h.met.Observe("insufficient_stock")
			return
		case "cart empty":
			h.met.Observe("empty_cart")
			return
		}
	}
	h.met.Observe("error")
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrderDetail(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
