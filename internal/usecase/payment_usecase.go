package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/pix"
	repo "storefront/internal/repository"
)

// 支払いリクエストの入力検証。実装はinternal/validator。
type PaymentValidator interface {
	ValidateCreatePix(ctx context.Context, in CreatePixPaymentInput) error
}

type PaymentCustomerInput struct {
	Name  string
	Email string
	CPF   string
}

type CreatePixPaymentInput struct {
	Amount      int64 //センターボ
	Description string
	Customer    PaymentCustomerInput
}

// PaymentUsecaseはPIX支払いの生成。
// 鍵の取得→ペイロード生成→pendingレコード保存、の1往復。
type PaymentUsecase struct {
	pixKeyRepo  repo.PixKeyRepository
	paymentRepo repo.PaymentRepository
	userRepo    repo.UserRepository
	validator   PaymentValidator
	idGen       IDGenerator
	clock       Clock
}

func NewPaymentUsecase(
	pixKeyRepo repo.PixKeyRepository,
	paymentRepo repo.PaymentRepository,
	userRepo repo.UserRepository,
	validator PaymentValidator,
	idGen IDGenerator,
	clock Clock,
) *PaymentUsecase {
	return &PaymentUsecase{
		pixKeyRepo:  pixKeyRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		validator:   validator,
		idGen:       idGen,
		clock:       clock,
	}
}

type CreatePixPaymentOutput struct {
	PixPayload pix.Payload `json:"pix_payload"`
}

// CreatePixPaymentはオーナーの受取キーからPIXコードを生成し、
// pendingの支払いを1件保存する。リトライの重複排除はしない。
func (u *PaymentUsecase) CreatePixPayment(ctx context.Context, userID string, in CreatePixPaymentInput) (CreatePixPaymentOutput, error) {
	if userID == "" {
		return CreatePixPaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.validator.ValidateCreatePix(ctx, in); err != nil {
		return CreatePixPaymentOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// 受取キーが無ければPIXは受けられない
	key, err := u.pixKeyRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CreatePixPaymentOutput{}, NewHTTPError(http.StatusNotFound, "pix key not found")
	}
	if err != nil {
		return CreatePixPaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 店名はコードのmerchantフィールドに入る
	owner, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return CreatePixPaymentOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CreatePixPaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	payload := pix.Build(pix.Input{
		Key:         key.Key,
		Amount:      in.Amount,
		Description: in.Description,
		Merchant:    owner.StoreName,
	})

	now := u.clock.Now()
	payment := model.Payment{
		ID:            u.idGen.NewID(),
		UserID:        userID,
		Amount:        in.Amount,
		Description:   in.Description,
		CustomerName:  in.Customer.Name,
		CustomerEmail: in.Customer.Email,
		CustomerCPF:   in.Customer.CPF,
		Method:        model.PaymentMethodPix,
		Status:        model.PaymentStatusPending,
		PixQRCode:     payload.QRCode,
		PixCopyPaste:  payload.CopyPaste,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := u.paymentRepo.Create(ctx, payment); err != nil {
		return CreatePixPaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CreatePixPaymentOutput{PixPayload: payload}, nil
}

// ListPaymentsはオーナーの支払い一覧。
func (u *PaymentUsecase) ListPayments(ctx context.Context, userID string) ([]model.Payment, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	payments, err := u.paymentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return payments, nil
}

// UUID等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}
