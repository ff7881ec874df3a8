package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

// CartUsecase は /api/cart の業務ロジック。
// 追加・削除は単純なupsert/deleteで、在庫との突き合わせは行わない。
// 在庫チェックはチェックアウト時に一括で行う（楽観的なカート）。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

type CartResponse struct {
	Items []repo.CartLine `json:"items"`
	Total int64           `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
	// クライアントが「この商品は既にカートにある」と主張しているか。
	// 真なら数量加算、偽なら新規行。
	AlreadyPresent bool
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.buildCartResponse(ctx, userID)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品の存在チェックのみ。在庫は見ない。
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.AlreadyPresent {
		updated, err := u.cartRepo.IncrementQuantity(ctx, userID, in.ProductID, in.Quantity)
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		// フラグが古くて行が無かった場合は挿入に倒す
		if !updated {
			if err := u.cartRepo.Insert(ctx, userID, in.ProductID, in.Quantity); err != nil {
				return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return u.buildCartResponse(ctx, userID)
	}

	if err := u.cartRepo.Insert(ctx, userID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// RemoveFromCart は行を削除する。無くてもエラーにしない。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if err := u.cartRepo.Remove(ctx, userID, productID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartRepo.ListWithProducts(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var total int64
	for _, it := range items {
		total += it.Price * it.Quantity
	}

	return CartResponse{Items: items, Total: total}, nil
}
