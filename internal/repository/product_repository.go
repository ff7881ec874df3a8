package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 注文明細から参照されている商品の削除など、外部キー起因の競合
var ErrConflict = errors.New("conflict")

// 一覧検索。条件はすべてAND結合。
type ProductFilter struct {
	// name / category への部分一致（大文字小文字は区別しない）
	Q string
	// category の完全一致
	Category string
	// stock_status の完全一致（in_stock / out_of_stock）
	StockStatus string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// 部分更新。StockとImageURLはnilなら既存値を維持する。
	Update(ctx context.Context, id int64, u ProductUpdate) error
	// 物理削除。注文明細から参照されていればErrConflict。
	Delete(ctx context.Context, id int64) error
	SetImageURL(ctx context.Context, id int64, imageURL string) error
}

// 部分更新の入力。nilのフィールドは触らない。
type ProductUpdate struct {
	Name        string
	Description string
	Price       int64
	Category    string
	Stock       *int64
	ImageURL    *string
}
