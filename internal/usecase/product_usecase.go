package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// GET /api/productsの入力DTO
type ListProductsInput struct {
	Q           string
	Category    string
	StockStatus string
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if len(in.Q) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch in.StockStatus {
	case "", string(model.StockStatusInStock), string(model.StockStatusOutOfStock):
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid stock_status")
	}

	items, err := u.productRepo.List(ctx, repo.ProductFilter{
		Q:           strings.TrimSpace(in.Q),
		Category:    strings.TrimSpace(in.Category),
		StockStatus: in.StockStatus,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
	Stock       int64
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, adminUserID int64, in CreateProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock < 0 {
		in.Stock = 0
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Stock:       in.Stock,
		// statusは常にstockから導出する
		StockStatus: model.DeriveStockStatus(in.Stock),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 部分更新の入力。StockとImageURLはnilなら既存値を維持。
type UpdateProductInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
	Stock       *int64
	ImageURL    *string
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, adminUserID int64, productID int64, in UpdateProductInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	err := u.productRepo.Update(ctx, productID, repo.ProductUpdate{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err == repo.ErrConflict {
		//注文明細から参照されている商品は消せない
		return NewHTTPError(http.StatusConflict, "product referenced by orders")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 在庫だけを更新。負値は0に丸め、stock_statusを導出し直す。
func (u *ProductUsecase) UpdateStock(ctx context.Context, adminUserID int64, productID int64, stock int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if stock < 0 {
		stock = 0
	}

	err := u.inventoryRepo.SetStock(ctx, productID, stock)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) SetProductImage(ctx context.Context, adminUserID int64, productID int64, imageURL string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(imageURL) == "" {
		return NewHTTPError(http.StatusBadRequest, "image url required")
	}

	err := u.productRepo.SetImageURL(ctx, productID, imageURL)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
