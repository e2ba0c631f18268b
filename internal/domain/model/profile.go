package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionInactive SubscriptionStatus = "inactive"
	SubscriptionActive   SubscriptionStatus = "active"
)

// 課金状態。Webhookの確定イベントだけが書き換える。
type Profile struct {
	UserID             string             `json:"user_id" gorm:"type:uuid;primaryKey"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status" gorm:"type:varchar(20);not null;default:'inactive'"`
	StripeCustomerID   string             `json:"stripe_customer_id" gorm:"type:varchar(255);index"`
	SubscriptionID     string             `json:"subscription_id" gorm:"type:varchar(255)"`
	CreatedAt          time.Time          `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt          time.Time          `json:"updated_at" gorm:"not null;autoUpdateTime"`
}
