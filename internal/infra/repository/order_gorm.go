package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, o model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		return 0, err
	}
	return o.ID, nil
}

func (r *OrderGormRepository) CreateLines(ctx context.Context, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return err
	}
	return nil
}

// 明細合計をTotalPriceにバックフィル
func (r *OrderGormRepository) SetTotalPrice(ctx context.Context, orderID int64, total int64) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("total_price", total)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, id int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) ListLinesByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("product_id asc").
		Find(&lines).Error
	if err != nil {
		return []model.OrderLine{}, err
	}
	return lines, nil
}

// ある商品を含む注文を注文者情報付きで返す（管理画面用）
func (r *OrderGormRepository) ListByProductID(ctx context.Context, productID int64) ([]repo.ProductOrderRow, error) {
	var rows []repo.ProductOrderRow

	err := r.db.WithContext(ctx).
		Model(&model.OrderLine{}).
		Select("orders.id AS order_id, users.first_name, users.last_name, order_lines.quantity, order_lines.total_price, orders.created_at AS created_date").
		Joins("INNER JOIN orders ON orders.id = order_lines.order_id").
		Joins("INNER JOIN users ON users.id = orders.user_id").
		Where("order_lines.product_id = ?", productID).
		Order("orders.id desc").
		Scan(&rows).Error

	if err != nil {
		return []repo.ProductOrderRow{}, err
	}
	return rows, nil
}
