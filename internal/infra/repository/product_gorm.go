package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/カテゴリ/在庫ステータスでAND絞り込みした一覧を返す。
func (r *ProductGormRepository) List(ctx context.Context, f repo.ProductFilter) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// q は name / category への部分一致
	if strings.TrimSpace(f.Q) != "" {
		like := "%" + strings.TrimSpace(f.Q) + "%"
		tx = tx.Where("name ILIKE ? OR category ILIKE ?", like, like)
	}

	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}

	if f.StockStatus != "" {
		tx = tx.Where("stock_status = ?", f.StockStatus)
	}

	if err := tx.Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の部分更新。StockとImageURLはnilなら既存値のまま（COALESCE相当）。
// stock_statusは渡されたstockからのみ導出し、呼び出し側の値は信用しない。
func (r *ProductGormRepository) Update(ctx context.Context, id int64, u repo.ProductUpdate) error {
	values := map[string]interface{}{
		"name":        u.Name,
		"description": u.Description,
		"price":       u.Price,
		"category":    u.Category,
	}
	if u.Stock != nil {
		s := *u.Stock
		if s < 0 {
			s = 0
		}
		values["stock"] = s
		values["stock_status"] = model.DeriveStockStatus(s)
	}
	if u.ImageURL != nil {
		values["image_url"] = *u.ImageURL
	}

	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品の物理削除。注文明細から参照されていれば外部キー違反になるので
// ErrConflictに読み替える。
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return repo.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 画像URLだけを更新
func (r *ProductGormRepository) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("image_url", imageURL)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// PostgreSQLの外部キー違反（23503）か
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
