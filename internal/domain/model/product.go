package model

import "time"

// 在庫の有無を表す導出ステータス
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// stockからstock_statusを導出する。
// statusは独立に持たず、在庫変更のたびに必ずこれで計算し直す。
func DeriveStockStatus(stock int64) StockStatus {
	if stock <= 0 {
		return StockStatusOutOfStock
	}
	return StockStatusInStock
}

type Product struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Price       int64       `gorm:"not null" json:"price"`
	Stock       int64       `gorm:"not null;default:0" json:"stock"`
	StockStatus StockStatus `gorm:"type:varchar(20);not null;index" json:"stock_status"`
	Category    string      `gorm:"type:varchar(100);index" json:"category"`
	ImageURL    string      `gorm:"type:varchar(500);column:image_url" json:"image_url"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
