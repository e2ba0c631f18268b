package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//公開ストアフロント用（is_active=trueのみ）
	ListActiveByUserID(ctx context.Context, userID string) ([]model.Product, error)
	//オーナー管理画面用（非公開も含む）
	ListByUserID(ctx context.Context, userID string) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id string) error
}
