package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫の現在値を設定。負値は0に丸め、stock_statusも導出し直す。
func (r *InventoryGormRepository) SetStock(ctx context.Context, productID int64, newStock int64) error {
	if newStock < 0 {
		newStock = 0
	}

	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":        newStock,
			"stock_status": model.DeriveStockStatus(newStock),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫が足りるときだけ減らす。stock_statusの導出も同じUPDATE文で行う
// （SET句の中の stock は更新前の値を参照する）。
// WHERE stock >= qty の条件付き更新がチェックと減算を1文にまとめるので、
// 同じ商品への並行チェックアウトが古い在庫を見て両方成功することはない。
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Updates(map[string]interface{}{
			"stock": gorm.Expr("stock - ?", qty),
			"stock_status": gorm.Expr(
				"CASE WHEN stock - ? <= 0 THEN ? ELSE ? END",
				qty, string(model.StockStatusOutOfStock), string(model.StockStatusInStock),
			),
		})

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
