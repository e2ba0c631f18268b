package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "storefront/internal/repository"
)

// Stripe APIへの約束。実装はinternal/infra/stripe。
type BillingGateway interface {
	CreateCustomer(ctx context.Context, email string, userID string) (string, error)
	CreateCheckoutSession(ctx context.Context, customerID string, userID string, origin string) (string, error)
	CreatePortalSession(ctx context.Context, customerID string, origin string) (string, error)
}

// BillingUsecaseはオーナーのサブスクリプション導線。
// 課金状態そのものはWebhookだけが書き換える。
type BillingUsecase struct {
	profileRepo repo.ProfileRepository
	userRepo    repo.UserRepository
	gateway     BillingGateway
}

func NewBillingUsecase(
	profileRepo repo.ProfileRepository,
	userRepo repo.UserRepository,
	gateway BillingGateway,
) *BillingUsecase {
	return &BillingUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		gateway:     gateway,
	}
}

type BillingSessionOutput struct {
	URL string `json:"url"`
}

// CreateCheckoutSessionはStripe顧客を保証してからセッションURLを返す。
func (u *BillingUsecase) CreateCheckoutSession(ctx context.Context, userID string, origin string) (BillingSessionOutput, error) {
	if userID == "" {
		return BillingSessionOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return BillingSessionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	customerID := profile.StripeCustomerID

	// 顧客IDが無ければ作って保存
	if customerID == "" {
		owner, err := u.userRepo.FindByID(ctx, userID)
		if errors.Is(err, repo.ErrUserNotFound) {
			return BillingSessionOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return BillingSessionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		customerID, err = u.gateway.CreateCustomer(ctx, owner.Email, userID)
		if err != nil {
			return BillingSessionOutput{}, NewHTTPError(http.StatusBadGateway, "payment provider error")
		}

		if err := u.profileRepo.SetStripeCustomerID(ctx, userID, customerID); err != nil {
			return BillingSessionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	url, err := u.gateway.CreateCheckoutSession(ctx, customerID, userID, origin)
	if err != nil {
		return BillingSessionOutput{}, NewHTTPError(http.StatusBadGateway, "payment provider error")
	}

	return BillingSessionOutput{URL: url}, nil
}

// CreatePortalSessionは既存のStripe顧客に限る。
func (u *BillingUsecase) CreatePortalSession(ctx context.Context, userID string, origin string) (BillingSessionOutput, error) {
	if userID == "" {
		return BillingSessionOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return BillingSessionOutput{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return BillingSessionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if profile.StripeCustomerID == "" {
		return BillingSessionOutput{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}

	url, err := u.gateway.CreatePortalSession(ctx, profile.StripeCustomerID, origin)
	if err != nil {
		return BillingSessionOutput{}, NewHTTPError(http.StatusBadGateway, "payment provider error")
	}

	return BillingSessionOutput{URL: url}, nil
}

// GetBillingStatusは管理画面の課金表示用。
func (u *BillingUsecase) GetBillingStatus(ctx context.Context, userID string) (BillingStatusOutput, error) {
	if userID == "" {
		return BillingStatusOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return BillingStatusOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return BillingStatusOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return BillingStatusOutput{
		SubscriptionStatus: string(profile.SubscriptionStatus),
		SubscriptionID:     profile.SubscriptionID,
	}, nil
}

type BillingStatusOutput struct {
	SubscriptionStatus string `json:"subscription_status"`
	SubscriptionID     string `json:"subscription_id,omitempty"`
}
