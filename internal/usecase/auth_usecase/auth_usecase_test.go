package auth

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByStoreSlug(ctx context.Context, slug string) (*model.User, error) {
	args := m.Called(ctx, slug)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// =====================
// Mock: ProfileRepository
// =====================

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, p model.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID string) (model.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(model.Profile)
	return p, args.Error(1)
}

func (m *MockProfileRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (model.Profile, error) {
	args := m.Called(ctx, customerID)
	p, _ := args.Get(0).(model.Profile)
	return p, args.Error(1)
}

func (m *MockProfileRepository) ActivateSubscription(ctx context.Context, userID string, customerID string, subscriptionID string) error {
	args := m.Called(ctx, userID, customerID, subscriptionID)
	return args.Error(0)
}

func (m *MockProfileRepository) DeactivateSubscription(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProfileRepository) SetStripeCustomerID(ctx context.Context, userID string, customerID string) error {
	args := m.Called(ctx, userID, customerID)
	return args.Error(0)
}

// =====================
// Mock: RefreshTokenRepository
// =====================

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *MockRefreshTokenRepository) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	args := m.Called(ctx, tokenID, revokedAt)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteAllByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// =====================
// Helper
// =====================

type fixedIDGen struct {
	id string
}

func (g *fixedIDGen) NewID() string { return g.id }

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

// テスト用の固定トークン発行
type stubIssuer struct{}

func (s *stubIssuer) Issue(userID string, now time.Time) (string, time.Time, error) {
	return "token-for-" + userID, now.Add(15 * time.Minute), nil
}

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// =====================
// Register
// =====================

// Test: 会員登録でユーザーとinactiveプロファイルが作られる
func TestRegisterUser_Success(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)

	userRepo.On("FindByEmail", mock.Anything, "ana@test.com").Return(nil, repository.ErrUserNotFound)
	userRepo.On("FindByStoreSlug", mock.Anything, "loja-da-ana").Return(nil, repository.ErrUserNotFound)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// ハッシュが保存され、平文は残らない
		return u.ID == "user-1" &&
			u.Email == "ana@test.com" &&
			u.StoreSlug == "loja-da-ana" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "correct-horse-battery" &&
			u.IsActive
	})).Return(nil)

	profileRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Profile) bool {
		return p.UserID == "user-1" && p.SubscriptionStatus == model.SubscriptionInactive
	})).Return(nil)

	uc := NewRegisterUserUsecase(userRepo, profileRepo, NewBcryptPasswordHasher(4), &fixedIDGen{id: "user-1"}, &fixedClock{now: testNow})

	out, err := uc.Execute(ctx, RegisterUserInput{
		Email:     "ana@test.com",
		Password:  "correct-horse-battery",
		StoreName: "Loja da Ana",
	})

	assert.NoError(t, err)
	assert.Equal(t, "loja-da-ana", out.User.StoreSlug)
	assert.Empty(t, out.User.PasswordHash)
	userRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
}

// Test: 短いパスワードは拒否
func TestRegisterUser_PasswordTooShort(t *testing.T) {
	ctx := context.Background()

	uc := NewRegisterUserUsecase(new(MockUserRepository), new(MockProfileRepository), NewBcryptPasswordHasher(4), &fixedIDGen{id: "user-1"}, &fixedClock{now: testNow})

	_, err := uc.Execute(ctx, RegisterUserInput{
		Email:     "ana@test.com",
		Password:  "short",
		StoreName: "Loja",
	})

	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

// Test: 既存メールは競合
func TestRegisterUser_EmailAlreadyExists(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "ana@test.com").Return(&model.User{ID: "existing"}, nil)

	uc := NewRegisterUserUsecase(userRepo, new(MockProfileRepository), NewBcryptPasswordHasher(4), &fixedIDGen{id: "user-1"}, &fixedClock{now: testNow})

	_, err := uc.Execute(ctx, RegisterUserInput{
		Email:     "ana@test.com",
		Password:  "correct-horse-battery",
		StoreName: "Loja",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

// Test: 店名が同じスラッグになるなら競合
func TestRegisterUser_StoreNameTaken(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "ana@test.com").Return(nil, repository.ErrUserNotFound)
	userRepo.On("FindByStoreSlug", mock.Anything, "loja").Return(&model.User{ID: "existing"}, nil)

	uc := NewRegisterUserUsecase(userRepo, new(MockProfileRepository), NewBcryptPasswordHasher(4), &fixedIDGen{id: "user-1"}, &fixedClock{now: testNow})

	_, err := uc.Execute(ctx, RegisterUserInput{
		Email:     "ana@test.com",
		Password:  "correct-horse-battery",
		StoreName: "Loja",
	})

	assert.ErrorIs(t, err, ErrStoreNameTaken)
}

// Test: スラッグ生成
func TestSlugify(t *testing.T) {
	assert.Equal(t, "loja-da-ana", Slugify("Loja da Ana"))
	assert.Equal(t, "loja-2-go", Slugify("  Loja!! 2 Go  "))
	assert.Equal(t, "", Slugify("???"))
}

// =====================
// Login
// =====================

// Test: ログイン成功でトークンとrefresh tokenが出る
func TestLogin_Success(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)

	hashed, err := NewBcryptPasswordHasher(4).Hash("correct-horse-battery")
	assert.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "ana@test.com").Return(&model.User{
		ID:           "user-1",
		Email:        "ana@test.com",
		PasswordHash: hashed,
		IsActive:     true,
	}, nil)

	rtRepo.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		// 平文ではなくハッシュが保存される
		return rt.UserID == "user-1" && len(rt.TokenHash) == 64
	})).Return(nil)

	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.LastLoginAt != nil
	})).Return(nil)

	uc := NewLoginUsecase(userRepo, rtRepo, NewBcryptPasswordVerifier(), &stubIssuer{}, &fixedIDGen{id: "rt-1"}, &fixedClock{now: testNow}, 14*24*time.Hour)

	out, side, err := uc.Execute(ctx, LoginInput{
		Email:    "ana@test.com",
		Password: "correct-horse-battery",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-for-user-1", out.Token.AccessToken)
	assert.Equal(t, int((15 * time.Minute).Seconds()), out.Token.ExpiresIn)
	assert.Empty(t, out.User.PasswordHash)
	assert.NotEmpty(t, side.PlainRefreshToken)
	rtRepo.AssertExpectations(t)
}

// Test: パスワード違いは資格情報エラー
func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)

	hashed, err := NewBcryptPasswordHasher(4).Hash("correct-horse-battery")
	assert.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "ana@test.com").Return(&model.User{
		ID:           "user-1",
		PasswordHash: hashed,
		IsActive:     true,
	}, nil)

	uc := NewLoginUsecase(userRepo, new(MockRefreshTokenRepository), NewBcryptPasswordVerifier(), &stubIssuer{}, &fixedIDGen{id: "rt-1"}, &fixedClock{now: testNow}, time.Hour)

	_, _, err = uc.Execute(ctx, LoginInput{Email: "ana@test.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// Test: 停止ユーザーはログイン不可
func TestLogin_InactiveUser(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "ana@test.com").Return(&model.User{
		ID:       "user-1",
		IsActive: false,
	}, nil)

	uc := NewLoginUsecase(userRepo, new(MockRefreshTokenRepository), NewBcryptPasswordVerifier(), &stubIssuer{}, &fixedIDGen{id: "rt-1"}, &fixedClock{now: testNow}, time.Hour)

	_, _, err := uc.Execute(ctx, LoginInput{Email: "ana@test.com", Password: "whatever"})

	assert.ErrorIs(t, err, ErrUserInactive)
}

// =====================
// Refresh
// =====================

func newRefreshUC(userRepo *MockUserRepository, rtRepo *MockRefreshTokenRepository) *RefreshUsecase {
	return NewRefreshUsecase(userRepo, rtRepo, &stubIssuer{}, &fixedIDGen{id: "rt-2"}, &fixedClock{now: testNow}, 14*24*time.Hour)
}

// Test: ローテーション成功（旧トークンはused、新トークン発行）
func TestRefresh_RotatesToken(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)

	plain := "old-refresh-token"

	rtRepo.On("FindByTokenHash", mock.Anything, HashRefreshToken(plain)).Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		TokenHash: HashRefreshToken(plain),
		ExpiresAt: testNow.Add(time.Hour),
	}, nil)
	userRepo.On("FindByID", mock.Anything, "user-1").Return(&model.User{ID: "user-1", IsActive: true}, nil)
	rtRepo.On("MarkUsed", mock.Anything, "rt-1", testNow).Return(nil)
	rtRepo.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		return rt.ID == "rt-2" && rt.TokenHash != HashRefreshToken(plain)
	})).Return(nil)

	out, side, err := newRefreshUC(userRepo, rtRepo).Execute(ctx, plain, "ua")

	assert.NoError(t, err)
	assert.Equal(t, "token-for-user-1", out.Token.AccessToken)
	assert.NotEmpty(t, side.PlainRefreshToken)
	assert.NotEqual(t, plain, side.PlainRefreshToken)
	rtRepo.AssertExpectations(t)
}

// Test: 使用済みトークンは拒否
func TestRefresh_RejectsUsedToken(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)

	plain := "used-refresh-token"
	usedAt := testNow.Add(-time.Minute)

	rtRepo.On("FindByTokenHash", mock.Anything, HashRefreshToken(plain)).Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		UsedAt:    &usedAt,
		ExpiresAt: testNow.Add(time.Hour),
	}, nil)

	_, _, err := newRefreshUC(userRepo, rtRepo).Execute(ctx, plain, "ua")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	rtRepo.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
}

// Test: 期限切れは拒否
func TestRefresh_RejectsExpiredToken(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)

	plain := "expired-refresh-token"

	rtRepo.On("FindByTokenHash", mock.Anything, HashRefreshToken(plain)).Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    "user-1",
		ExpiresAt: testNow.Add(-time.Minute),
	}, nil)

	_, _, err := newRefreshUC(userRepo, rtRepo).Execute(ctx, plain, "ua")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

// =====================
// Logout
// =====================

// Test: トークンが見つからなくても成功（冪等）
func TestLogout_UnknownTokenIsIdempotent(t *testing.T) {
	ctx := context.Background()

	rtRepo := new(MockRefreshTokenRepository)
	rtRepo.On("FindByTokenHash", mock.Anything, mock.Anything).Return(nil, repository.ErrRefreshTokenNotFound)

	err := NewLogoutUsecase(rtRepo, &fixedClock{now: testNow}).Execute(ctx, "ghost-token")

	assert.NoError(t, err)
}

// Test: 見つかったトークンはrevokeされる
func TestLogout_RevokesToken(t *testing.T) {
	ctx := context.Background()

	rtRepo := new(MockRefreshTokenRepository)

	plain := "live-refresh-token"
	rtRepo.On("FindByTokenHash", mock.Anything, HashRefreshToken(plain)).Return(&model.RefreshToken{
		ID:     "rt-1",
		UserID: "user-1",
	}, nil)
	rtRepo.On("Revoke", mock.Anything, "rt-1", testNow).Return(nil)

	err := NewLogoutUsecase(rtRepo, &fixedClock{now: testNow}).Execute(ctx, plain)

	assert.NoError(t, err)
	rtRepo.AssertExpectations(t)
}
