package model

import (
	"time"

	"gorm.io/gorm"
)

// Priceはセンターボ（1/100 BRL）
type Product struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      string         `json:"user_id" gorm:"type:uuid;not null;index"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       int64          `json:"price" gorm:"not null"`
	ImageURL    string         `json:"image_url" gorm:"type:text"`
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"not null;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
