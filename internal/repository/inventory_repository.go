package repository

import "context"

type InventoryRepository interface {
	// 在庫の現在値を設定（負値は0に丸め、stock_statusも導出し直す）
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// 在庫が足りるときだけ減算し、stock_statusも同じ文の中で導出し直す。
	// チェックと減算を1文にまとめることで、並行チェックアウト同士の
	// lost updateを防ぐ。足りなければfalse。
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
