package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// 商品単位の注文履歴（管理画面用のJOIN結果）
type ProductOrderRow struct {
	OrderID     int64     `json:"order_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Quantity    int64     `json:"quantity"`
	TotalPrice  int64     `json:"total_price"`
	CreatedDate time.Time `json:"created_date"`
}

type OrderRepository interface {
	// 注文を作成してIDを返す。TotalPriceは未設定のまま。
	Create(ctx context.Context, o model.Order) (int64, error)

	// 明細を一括作成
	CreateLines(ctx context.Context, lines []model.OrderLine) error

	// 明細合計をTotalPriceにバックフィル
	SetTotalPrice(ctx context.Context, orderID int64, total int64) error

	FindByID(ctx context.Context, id int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	ListLinesByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)

	// ある商品を含む注文の一覧（注文者情報付き）
	ListByProductID(ctx context.Context, productID int64) ([]ProductOrderRow, error)
}
