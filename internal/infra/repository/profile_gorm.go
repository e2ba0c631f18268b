package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

// DI
func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

// アカウント作成時にinactiveで作る
func (r *ProfileGormRepository) Create(ctx context.Context, p model.Profile) error {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return err
	}
	return nil
}

func (r *ProfileGormRepository) FindByUserID(ctx context.Context, userID string) (model.Profile, error) {
	var p model.Profile

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// Webhookのcustomer参照からオーナーを解決する
func (r *ProfileGormRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (model.Profile, error) {
	var p model.Profile

	err := r.db.WithContext(ctx).
		Where("stripe_customer_id = ?", customerID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// activeへ上書き。絶対値の代入なので二重適用しても同じ結果になる。
func (r *ProfileGormRepository) ActivateSubscription(ctx context.Context, userID string, customerID string, subscriptionID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"subscription_status": model.SubscriptionActive,
			"stripe_customer_id":  customerID,
			"subscription_id":     subscriptionID,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// inactiveへ戻してsubscription_idをクリア
func (r *ProfileGormRepository) DeactivateSubscription(ctx context.Context, userID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"subscription_status": model.SubscriptionInactive,
			"subscription_id":     "",
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Stripe顧客IDを保存
func (r *ProfileGormRepository) SetStripeCustomerID(ctx context.Context, userID string, customerID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("stripe_customer_id", customerID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
