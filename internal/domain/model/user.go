package model

import "time"

// ストアオーナー（1アカウント=1ストア）
type User struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	StoreName    string     `json:"store_name" gorm:"type:varchar(100);not null"`
	StoreSlug    string     `json:"store_slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"not null;autoUpdateTime"`
}
