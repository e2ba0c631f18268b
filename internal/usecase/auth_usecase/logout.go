package auth

import (
	"context"
	"errors"

	"storefront/internal/repository"
)

// LogoutUsecaseは提示されたrefresh tokenを失効させる。
type LogoutUsecase struct {
	rtRepo repository.RefreshTokenRepository
	clock  Clock
}

func NewLogoutUsecase(rtRepo repository.RefreshTokenRepository, clock Clock) *LogoutUsecase {
	return &LogoutUsecase{rtRepo: rtRepo, clock: clock}
}

// トークンが見つからなくてもログアウトは成功扱い（冪等）。
func (u *LogoutUsecase) Execute(ctx context.Context, plainRefresh string) error {
	if plainRefresh == "" {
		return nil
	}

	stored, err := u.rtRepo.FindByTokenHash(ctx, HashRefreshToken(plainRefresh))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}
		return err
	}

	if err := u.rtRepo.Revoke(ctx, stored.ID, u.clock.Now()); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}
		return err
	}
	return nil
}
