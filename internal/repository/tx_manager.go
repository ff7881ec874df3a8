package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Products() ProductRepository
	Inventory() InventoryRepository
	Carts() CartRepository
	Orders() OrderRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがエラーを返したら全体をロールバックする。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
