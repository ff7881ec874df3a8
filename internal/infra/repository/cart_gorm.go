package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// カート行を商品名・現在価格付きで返す
func (r *CartGormRepository) ListWithProducts(ctx context.Context, userID int64) ([]repo.CartLine, error) {
	var lines []repo.CartLine

	err := r.db.WithContext(ctx).
		Model(&model.CartEntry{}).
		Select("cart_entries.product_id, products.name, products.price, cart_entries.quantity").
		Joins("INNER JOIN products ON products.id = cart_entries.product_id").
		Where("cart_entries.user_id = ?", userID).
		Order("cart_entries.product_id asc").
		Scan(&lines).Error

	if err != nil {
		return []repo.CartLine{}, err
	}
	return lines, nil
}

// 既存行の数量加算。行が無ければfalse。
func (r *CartGormRepository) IncrementQuantity(ctx context.Context, userID int64, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.CartEntry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", gorm.Expr("quantity + ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 新規行の挿入
func (r *CartGormRepository) Insert(ctx context.Context, userID int64, productID int64, qty int64) error {
	entry := model.CartEntry{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return err
	}
	return nil
}

// 行削除。無くてもエラーにしない。
func (r *CartGormRepository) Remove(ctx context.Context, userID int64, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartEntry{}).Error
}

// ユーザーのカートを空にする
func (r *CartGormRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartEntry{}).Error
}
