package model

import "time"

type PixKeyType string

const (
	PixKeyTypeEmail  PixKeyType = "email"
	PixKeyTypePhone  PixKeyType = "phone"
	PixKeyTypeCPF    PixKeyType = "cpf"
	PixKeyTypeCNPJ   PixKeyType = "cnpj"
	PixKeyTypeRandom PixKeyType = "random"
)

// オーナーの受取キー。1ユーザーにつき1件
type PixKey struct {
	ID        string     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string     `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Type      PixKeyType `json:"type" gorm:"type:varchar(20);not null"`
	Key       string     `json:"key" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null;autoUpdateTime"`
}
