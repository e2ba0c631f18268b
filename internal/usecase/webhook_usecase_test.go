package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newWebhookUC(profileRepo *MockProfileRepository) *WebhookUsecase {
	return NewWebhookUsecase(profileRepo, zap.NewNop())
}

// Test: チェックアウト完了でactiveへ上書き
func TestWebhookUsecase_CheckoutCompleted_Activates(t *testing.T) {
	ctx := context.Background()

	profileRepo := new(MockProfileRepository)
	profileRepo.On("ActivateSubscription", mock.Anything, "owner-1", "cus_123", "sub_456").Return(nil)

	err := newWebhookUC(profileRepo).ApplyCheckoutCompleted(ctx, "owner-1", "cus_123", "sub_456")

	assert.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

// Test: user_idメタデータ欠落は拒否（状態は変えない）
func TestWebhookUsecase_CheckoutCompleted_MissingUserID(t *testing.T) {
	ctx := context.Background()

	profileRepo := new(MockProfileRepository)

	err := newWebhookUC(profileRepo).ApplyCheckoutCompleted(ctx, "", "cus_123", "sub_456")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "missing user_id metadata", he.Message)
	profileRepo.AssertNotCalled(t, "ActivateSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Test: 同じイベントを2回適用しても結果は1回と同じ（絶対値の上書き）
func TestWebhookUsecase_CheckoutCompleted_Idempotent(t *testing.T) {
	ctx := context.Background()

	profileRepo := new(MockProfileRepository)
	profileRepo.On("ActivateSubscription", mock.Anything, "owner-1", "cus_123", "sub_456").Return(nil)

	uc := newWebhookUC(profileRepo)

	assert.NoError(t, uc.ApplyCheckoutCompleted(ctx, "owner-1", "cus_123", "sub_456"))
	assert.NoError(t, uc.ApplyCheckoutCompleted(ctx, "owner-1", "cus_123", "sub_456"))

	// 同じ絶対値で2回呼ばれるだけで、積み上がる状態は無い
	profileRepo.AssertNumberOfCalls(t, "ActivateSubscription", 2)
}

// Test: 解約イベントでinactiveへ戻す
func TestWebhookUsecase_SubscriptionDeleted_Deactivates(t *testing.T) {
	ctx := context.Background()

	profileRepo := new(MockProfileRepository)
	profileRepo.On("FindByStripeCustomerID", mock.Anything, "cus_123").Return(model.Profile{
		UserID:             "owner-1",
		SubscriptionStatus: model.SubscriptionActive,
		StripeCustomerID:   "cus_123",
	}, nil)
	profileRepo.On("DeactivateSubscription", mock.Anything, "owner-1").Return(nil)

	err := newWebhookUC(profileRepo).ApplySubscriptionDeleted(ctx, "cus_123")

	assert.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

// Test: 知らない顧客の解約はログだけ残して落とす（200相当）
func TestWebhookUsecase_SubscriptionDeleted_UnknownCustomerDropped(t *testing.T) {
	ctx := context.Background()

	profileRepo := new(MockProfileRepository)
	profileRepo.On("FindByStripeCustomerID", mock.Anything, "cus_ghost").Return(model.Profile{}, repo.ErrNotFound)

	err := newWebhookUC(profileRepo).ApplySubscriptionDeleted(ctx, "cus_ghost")

	assert.NoError(t, err)
	profileRepo.AssertNotCalled(t, "DeactivateSubscription", mock.Anything, mock.Anything)
}

// Test: 顧客参照が無いイベントもエラーにはしない
func TestWebhookUsecase_SubscriptionDeleted_EmptyCustomer(t *testing.T) {
	ctx := context.Background()

	profileRepo := new(MockProfileRepository)

	err := newWebhookUC(profileRepo).ApplySubscriptionDeleted(ctx, "")

	assert.NoError(t, err)
	profileRepo.AssertNotCalled(t, "FindByStripeCustomerID", mock.Anything, mock.Anything)
}

// Test: DB障害は500
func TestWebhookUsecase_SubscriptionDeleted_StoreFailure(t *testing.T) {
	ctx := context.Background()

	profileRepo := new(MockProfileRepository)
	profileRepo.On("FindByStripeCustomerID", mock.Anything, "cus_123").Return(model.Profile{}, errors.New("db down"))

	err := newWebhookUC(profileRepo).ApplySubscriptionDeleted(ctx, "cus_123")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
}
