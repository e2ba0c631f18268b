package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// PixKeyUsecaseはオーナーの受取キー設定。
type PixKeyUsecase struct {
	pixKeyRepo repo.PixKeyRepository
	idGen      IDGenerator
	clock      Clock
}

func NewPixKeyUsecase(pixKeyRepo repo.PixKeyRepository, idGen IDGenerator, clock Clock) *PixKeyUsecase {
	return &PixKeyUsecase{
		pixKeyRepo: pixKeyRepo,
		idGen:      idGen,
		clock:      clock,
	}
}

type SavePixKeyInput struct {
	Type string
	Key  string
}

// GetPixKeyは設定済みキーを返す（未設定は404）。
func (u *PixKeyUsecase) GetPixKey(ctx context.Context, userID string) (model.PixKey, error) {
	if userID == "" {
		return model.PixKey{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	key, err := u.pixKeyRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.PixKey{}, NewHTTPError(http.StatusNotFound, "pix key not found")
	}
	if err != nil {
		return model.PixKey{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return key, nil
}

// SavePixKeyはtype/keyを検証して1件だけ保持する（上書き）。
func (u *PixKeyUsecase) SavePixKey(ctx context.Context, userID string, in SavePixKeyInput) (model.PixKey, error) {
	if userID == "" {
		return model.PixKey{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	keyType, ok := parsePixKeyType(in.Type)
	if !ok {
		return model.PixKey{}, NewHTTPError(http.StatusBadRequest, "invalid key type")
	}
	if strings.TrimSpace(in.Key) == "" {
		return model.PixKey{}, NewHTTPError(http.StatusBadRequest, "invalid key")
	}

	now := u.clock.Now()
	saved, err := u.pixKeyRepo.Upsert(ctx, model.PixKey{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		Type:      keyType,
		Key:       strings.TrimSpace(in.Key),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.PixKey{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return saved, nil
}

func parsePixKeyType(s string) (model.PixKeyType, bool) {
	switch model.PixKeyType(s) {
	case model.PixKeyTypeEmail,
		model.PixKeyTypePhone,
		model.PixKeyTypeCPF,
		model.PixKeyTypeCNPJ,
		model.PixKeyTypeRandom:
		return model.PixKeyType(s), true
	default:
		return "", false
	}
}
