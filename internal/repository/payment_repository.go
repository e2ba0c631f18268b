package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Payment, error)
}
