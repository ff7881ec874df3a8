package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cart のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	// 既にカートにある商品への追加なら真（数量加算になる）
	AlreadyPresent bool `json:"already_present"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/cart")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.DELETE("/:productId", h.removeFromCart)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddCartInput{
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		AlreadyPresent: req.AlreadyPresent,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeFromCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.RemoveFromCart(c.Request().Context(), userID, productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
