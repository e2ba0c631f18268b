package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"storefront/internal/usecase"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCustomer = errors.New("invalid customer")
	ErrInvalidEmail    = errors.New("invalid customer email")
	ErrInvalidCPF      = errors.New("invalid customer cpf")
)

type paymentValidator struct{}

// UsecaseはinterfaceをDI
func NewPaymentValidator() usecase.PaymentValidator {
	return &paymentValidator{}
}

// 支払いリクエストの入力を検証
func (v *paymentValidator) ValidateCreatePix(ctx context.Context, in usecase.CreatePixPaymentInput) error {
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}

	if strings.TrimSpace(in.Customer.Name) == "" {
		return ErrInvalidCustomer
	}

	if !isEmailLike(strings.TrimSpace(in.Customer.Email)) {
		return ErrInvalidEmail
	}

	// CPFは任意。指定されたら数字11桁のみ許可
	if cpf := strings.TrimSpace(in.Customer.CPF); cpf != "" {
		if !isCPFLike(cpf) {
			return ErrInvalidCPF
		}
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}

// 数字11桁（区切り記号は許容してから判定）
func isCPFLike(s string) bool {
	digits := strings.NewReplacer(".", "", "-", "").Replace(s)
	re := regexp.MustCompile(`^[0-9]{11}$`)
	return re.MatchString(digits)
}
