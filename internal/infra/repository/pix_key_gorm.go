package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PixKeyGormRepository struct {
	db *gorm.DB
}

// DI
func NewPixKeyGormRepository(db *gorm.DB) *PixKeyGormRepository {
	return &PixKeyGormRepository{db: db}
}

// オーナーの受取キーを1件取得
func (r *PixKeyGormRepository) FindByUserID(ctx context.Context, userID string) (model.PixKey, error) {
	var key model.PixKey

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&key).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PixKey{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PixKey{}, err
	}
	return key, nil
}

// user_id単位でtype/keyを上書き（無ければ作成）
func (r *PixKeyGormRepository) Upsert(ctx context.Context, key model.PixKey) (model.PixKey, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "key", "updated_at"}),
		}).
		Create(&key).Error

	if err != nil {
		return model.PixKey{}, err
	}

	return r.FindByUserID(ctx, key.UserID)
}
