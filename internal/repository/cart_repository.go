package repository

import "context"

// カート行と商品のJOIN結果。
// Priceはカタログの現在値（スナップショットではない）。
type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartRepository interface {
	// ユーザーのカートを商品情報付きで返す
	ListWithProducts(ctx context.Context, userID int64) ([]CartLine, error)

	// 既存行の数量加算。行が無ければfalse。
	IncrementQuantity(ctx context.Context, userID int64, productID int64, qty int64) (bool, error)

	// 新規行の挿入
	Insert(ctx context.Context, userID int64, productID int64, qty int64) error

	// 行削除。存在しなくてもエラーにしない。
	Remove(ctx context.Context, userID int64, productID int64) error

	// ユーザーのカートを空にする（チェックアウト成功時）
	Clear(ctx context.Context, userID int64) error
}
