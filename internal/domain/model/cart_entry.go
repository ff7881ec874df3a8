package model

import "time"

// カートの1行。(user, product)で一意、数量だけを持つ。
// 追加時点では在庫チェックしない（チェックはチェックアウト時のみ）。
type CartEntry struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ProductID int64     `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}
