package model

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string    `gorm:"type:varchar(30);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(30);not null" json:"last_name"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
