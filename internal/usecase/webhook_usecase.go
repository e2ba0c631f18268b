package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// WebhookUsecaseは検証済みイベントを課金状態へ反映する。
// 署名検証はhandler側の前提条件で、ここへは検証済みのものしか来ない。
type WebhookUsecase struct {
	profileRepo repo.ProfileRepository
	logger      *zap.Logger
}

func NewWebhookUsecase(profileRepo repo.ProfileRepository, logger *zap.Logger) *WebhookUsecase {
	return &WebhookUsecase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// ApplyCheckoutCompletedはactiveへの上書き。
// user_idの相関が無いイベントは必須欠落として拒否する。
// 絶対値の代入なので同じイベントを二度適用しても結果は同じ。
func (u *WebhookUsecase) ApplyCheckoutCompleted(ctx context.Context, userID string, customerID string, subscriptionID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusBadRequest, "missing user_id metadata")
	}

	if err := u.profileRepo.ActivateSubscription(ctx, userID, customerID, subscriptionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusBadRequest, "unknown user")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info("subscription activated",
		zap.String("user_id", userID),
		zap.String("subscription_id", subscriptionID),
	)
	return nil
}

// ApplySubscriptionDeletedはcustomer参照からオーナーを解決してinactiveへ戻す。
// 解決できないイベントは更新先が無いので落とすだけ（再試行させない）。
func (u *WebhookUsecase) ApplySubscriptionDeleted(ctx context.Context, customerID string) error {
	if customerID == "" {
		u.logger.Warn("subscription deleted event without customer reference")
		return nil
	}

	profile, err := u.profileRepo.FindByStripeCustomerID(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		u.logger.Warn("subscription deleted for unknown customer, dropping",
			zap.String("stripe_customer_id", customerID),
		)
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.profileRepo.DeactivateSubscription(ctx, profile.UserID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info("subscription deactivated",
		zap.String("user_id", profile.UserID),
	)
	return nil
}
