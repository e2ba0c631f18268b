package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 受取キーは1ユーザーにつき1件
type PixKeyRepository interface {
	FindByUserID(ctx context.Context, userID string) (model.PixKey, error)
	// 既存があれば type/key を置き換える
	Upsert(ctx context.Context, key model.PixKey) (model.PixKey, error)
}
