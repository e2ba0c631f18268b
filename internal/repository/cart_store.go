package repository

import (
	"context"

	"storefront/internal/cart"
)

// セッション単位のカゴ保存。
// Saveは毎回スナップショット全体を上書きする。Loadは無ければfound=false。
type CartStore interface {
	Save(ctx context.Context, sessionID string, state cart.State) error
	Load(ctx context.Context, sessionID string) (cart.State, bool, error)
}
