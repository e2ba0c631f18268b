package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 課金状態の永続化。
// Activate/Deactivateは絶対値での上書き（読み取り加算ではない）なので
// 同じイベントを二度適用しても結果は変わらない。
type ProfileRepository interface {
	Create(ctx context.Context, p model.Profile) error
	FindByUserID(ctx context.Context, userID string) (model.Profile, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (model.Profile, error)

	//チェックアウト完了: active + 外部参照を記録
	ActivateSubscription(ctx context.Context, userID string, customerID string, subscriptionID string) error
	//解約: inactiveへ戻し、subscription_idをクリア
	DeactivateSubscription(ctx context.Context, userID string) error
	//顧客ID発行時に保存
	SetStripeCustomerID(ctx context.Context, userID string, customerID string) error
}
