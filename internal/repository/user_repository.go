package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規オーナー作成
	Create(ctx context.Context, user *model.User) error
	// IDからオーナーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからオーナーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//ストアのスラッグから一件取得する（公開ストアフロント用）。
	FindByStoreSlug(ctx context.Context, slug string) (*model.User, error)
	// 最終ログインなどの更新
	Update(ctx context.Context, user *model.User) error
}
