package model

import "time"

type PaymentMethod string

const (
	PaymentMethodPix  PaymentMethod = "pix"
	PaymentMethodCard PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// 支払いレコード。pendingで作成し、確定は外部からの通知のみ。
// Amountはセンターボ（1/100 BRL）。
type Payment struct {
	ID            string        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        string        `json:"user_id" gorm:"type:uuid;not null;index"`
	Amount        int64         `json:"amount" gorm:"not null"`
	Description   string        `json:"description" gorm:"type:text"`
	CustomerName  string        `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerEmail string        `json:"customer_email" gorm:"type:varchar(255);not null"`
	CustomerCPF   string        `json:"customer_cpf" gorm:"column:customer_cpf;type:varchar(14)"`
	Method        PaymentMethod `json:"payment_method" gorm:"column:payment_method;type:varchar(10);not null"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(10);not null;index"`
	PixQRCode     string        `json:"pix_qr_code" gorm:"column:pix_qr_code;type:text"`
	PixCopyPaste  string        `json:"pix_copy_paste" gorm:"column:pix_copy_paste;type:text"`
	CreatedAt     time.Time     `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"not null;autoUpdateTime"`
}
