package model

import "time"

// 確定済み注文。TotalPriceは明細作成後にバックフィルするためnull許容。
type Order struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	Address    string    `gorm:"type:varchar(500);not null" json:"address"`
	TotalPrice *int64    `json:"total_price"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
