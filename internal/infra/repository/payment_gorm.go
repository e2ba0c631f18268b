package repository

import (
	"context"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

// DI
func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

// pendingの支払いレコードを1件挿入。
// リトライの重複排除はしない（呼び出しごとに1行）。
func (r *PaymentGormRepository) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

// オーナーの支払い一覧（新しい順）
func (r *PaymentGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Payment, error) {
	var payments []model.Payment

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&payments).Error

	if err != nil {
		return nil, err
	}
	return payments, nil
}
