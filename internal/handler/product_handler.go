package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

// /api/products のHTTP
type ProductHandler struct {
	uc        *usecase.ProductUsecase
	orderUC   *usecase.OrderUsecase
	uploadDir string
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, orderUC *usecase.OrderUsecase, uploadDir string) *ProductHandler {
	return &ProductHandler{uc: uc, orderUC: orderUC, uploadDir: uploadDir}
}

type ProductCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Stock       int64  `json:"stock"`
}

type ProductUpdateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	Category    string  `json:"category"`
	Stock       *int64  `json:"stock"`
	ImageURL    *string `json:"image_url"`
}

type StockUpdateRequest struct {
	Stock int64 `json:"stock"`
}

// 一覧・詳細は公開、変更系はADMINのみ
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/api/products", h.list)
	e.GET("/api/products/:id", h.detail)

	g := e.Group("/api/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminGuard())

	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PATCH("/:id/stock", h.updateStock)
	g.POST("/:id/image", h.uploadImage)
	g.GET("/:id/orders", h.listOrders)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Q:           c.QueryParam("q"),
		Category:    c.QueryParam("category"),
		StockStatus: c.QueryParam("stock_status"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), userID, usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err = h.uc.UpdateProduct(c.Request().Context(), userID, id, usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) updateStock(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req StockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateStock(c.Request().Context(), userID, id, req.Stock); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// 画像をuploadsに保存してURLを記録する。ファイル名はUUIDで採番。
func (h *ProductHandler) uploadImage(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image required"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image"})
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dstPath := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	imageURL := fmt.Sprintf("/uploads/%s", name)
	if err := h.uc.SetProductImage(c.Request().Context(), userID, id, imageURL); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"image_url": imageURL})
}

func (h *ProductHandler) listOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.ListOrdersByProduct(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
