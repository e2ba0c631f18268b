package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// ProductUsecaseはカタログの業務ロジック。
// 公開side（ストアフロント）とオーナーside（管理画面CRUD）の両方。
type ProductUsecase struct {
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	idGen       IDGenerator
	clock       Clock
}

func NewProductUsecase(
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	idGen IDGenerator,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		userRepo:    userRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

type StorefrontOutput struct {
	StoreName string          `json:"store_name"`
	StoreSlug string          `json:"store_slug"`
	Products  []model.Product `json:"products"`
}

// GetStorefrontは公開ストアフロント（店名＋公開中の商品）。
func (u *ProductUsecase) GetStorefront(ctx context.Context, slug string) (StorefrontOutput, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return StorefrontOutput{}, NewHTTPError(http.StatusBadRequest, "invalid store")
	}

	owner, err := u.userRepo.FindByStoreSlug(ctx, slug)
	if errors.Is(err, repo.ErrUserNotFound) {
		return StorefrontOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return StorefrontOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.productRepo.ListActiveByUserID(ctx, owner.ID)
	if err != nil {
		return StorefrontOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return StorefrontOutput{
		StoreName: owner.StoreName,
		StoreSlug: owner.StoreSlug,
		Products:  products,
	}, nil
}

type ProductInput struct {
	Name        string
	Description string
	Price       int64 //センターボ
	ImageURL    string
	IsActive    bool
}

// ListOwnProductsはオーナーの全商品（非公開含む）。
func (u *ProductUsecase) ListOwnProducts(ctx context.Context, userID string) ([]model.Product, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	products, err := u.productRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

// CreateProductは新規商品を作る。
func (u *ProductUsecase) CreateProduct(ctx context.Context, userID string, in ProductInput) (model.Product, error) {
	if userID == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	now := u.clock.Now()
	p := model.Product{
		ID:          u.idGen.NewID(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// UpdateProductは所有チェックの上で全項目更新。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, userID string, productID string, in ProductInput) (model.Product, error) {
	if userID == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	existing, err := u.findOwned(ctx, userID, productID)
	if err != nil {
		return model.Product{}, err
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Description = in.Description
	existing.Price = in.Price
	existing.ImageURL = in.ImageURL
	existing.IsActive = in.IsActive

	if err := u.productRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return existing, nil
}

// DeleteProductは論理削除。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, userID string, productID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if _, err := u.findOwned(ctx, userID, productID); err != nil {
		return err
	}

	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 所有チェック（他人の商品は404で返す）
func (u *ProductUsecase) findOwned(ctx context.Context, userID string, productID string) (model.Product, error) {
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.UserID != userID {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	return nil
}
