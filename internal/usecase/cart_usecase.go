package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/cart"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// CartUsecaseは買い物客のカゴ操作。
// 遷移はinternal/cartの純粋関数で行い、遷移のたびにStoreへ上書き保存する。
type CartUsecase struct {
	store       repo.CartStore
	productRepo repo.ProductRepository
	logger      *zap.Logger
}

func NewCartUsecase(
	store repo.CartStore,
	productRepo repo.ProductRepository,
	logger *zap.Logger,
) *CartUsecase {
	return &CartUsecase{
		store:       store,
		productRepo: productRepo,
		logger:      logger,
	}
}

type AddCartItemInput struct {
	ProductID string
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCartは保存済みスナップショットを返す。
// 復元に失敗しても買い物は止めず、空のカゴへフォールバックする。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (cart.State, error) {
	return u.loadOrEmpty(ctx, sessionID), nil
}

// AddItemは商品を1個追加する（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, in AddCartItemInput) (cart.State, error) {
	if in.ProductID == "" {
		return cart.State{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return cart.State{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return cart.State{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return cart.State{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	state := u.loadOrEmpty(ctx, sessionID)
	state = state.Add(cart.Item{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Image:     p.ImageURL,
	})

	return u.persist(ctx, sessionID, state)
}

// UpdateItemは数量を置き換える。qty>=1はここ（境界）で強制する。
func (u *CartUsecase) UpdateItem(ctx context.Context, sessionID string, productID string, in UpdateCartItemInput) (cart.State, error) {
	if productID == "" {
		return cart.State{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return cart.State{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	state := u.loadOrEmpty(ctx, sessionID)
	state = state.UpdateQuantity(productID, in.Quantity)

	return u.persist(ctx, sessionID, state)
}

// RemoveItemは明細を削除する。存在しないIDはno-op。
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, productID string) (cart.State, error) {
	if productID == "" {
		return cart.State{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	state := u.loadOrEmpty(ctx, sessionID)
	state = state.Remove(productID)

	return u.persist(ctx, sessionID, state)
}

// ClearCartは空にする。空の状態も保存する。
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (cart.State, error) {
	state := u.loadOrEmpty(ctx, sessionID).Clear()
	return u.persist(ctx, sessionID, state)
}

// 復元失敗は空のカゴへフォールバック（買い物客を止めない）
func (u *CartUsecase) loadOrEmpty(ctx context.Context, sessionID string) cart.State {
	state, found, err := u.store.Load(ctx, sessionID)
	if err != nil {
		u.logger.Warn("cart load failed, falling back to empty",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return cart.Empty()
	}
	if !found {
		return cart.Empty()
	}
	return state
}

// 遷移後のスナップショットを保存してから返す
func (u *CartUsecase) persist(ctx context.Context, sessionID string, state cart.State) (cart.State, error) {
	if err := u.store.Save(ctx, sessionID, state); err != nil {
		return cart.State{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return state, nil
}
