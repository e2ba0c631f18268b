package usecase

import (
	"context"
	"time"

	"storefront/internal/cart"
	"storefront/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: CartStore
// =====================

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Save(ctx context.Context, sessionID string, state cart.State) error {
	args := m.Called(ctx, sessionID, state)
	return args.Error(0)
}

func (m *MockCartStore) Load(ctx context.Context, sessionID string) (cart.State, bool, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(cart.State)
	return s, args.Bool(1), args.Error(2)
}

// =====================
// Mock: ProductRepository
// =====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListActiveByUserID(ctx context.Context, userID string) ([]model.Product, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) ListByUserID(ctx context.Context, userID string) ([]model.Product, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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
// Mock: PixKeyRepository
// =====================

type MockPixKeyRepository struct {
	mock.Mock
}

func (m *MockPixKeyRepository) FindByUserID(ctx context.Context, userID string) (model.PixKey, error) {
	args := m.Called(ctx, userID)
	k, _ := args.Get(0).(model.PixKey)
	return k, args.Error(1)
}

func (m *MockPixKeyRepository) Upsert(ctx context.Context, key model.PixKey) (model.PixKey, error) {
	args := m.Called(ctx, key)
	k, _ := args.Get(0).(model.PixKey)
	return k, args.Error(1)
}

// =====================
// Mock: PaymentRepository
// =====================

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Payment)
	return created, args.Error(1)
}

func (m *MockPaymentRepository) ListByUserID(ctx context.Context, userID string) ([]model.Payment, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]model.Payment)
	return ps, args.Error(1)
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
// Mock: PaymentValidator
// =====================

type MockPaymentValidator struct {
	mock.Mock
}

func (m *MockPaymentValidator) ValidateCreatePix(ctx context.Context, in CreatePixPaymentInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

// =====================
// Mock: BillingGateway
// =====================

type MockBillingGateway struct {
	mock.Mock
}

func (m *MockBillingGateway) CreateCustomer(ctx context.Context, email string, userID string) (string, error) {
	args := m.Called(ctx, email, userID)
	return args.String(0), args.Error(1)
}

func (m *MockBillingGateway) CreateCheckoutSession(ctx context.Context, customerID string, userID string, origin string) (string, error) {
	args := m.Called(ctx, customerID, userID, origin)
	return args.String(0), args.Error(1)
}

func (m *MockBillingGateway) CreatePortalSession(ctx context.Context, customerID string, origin string) (string, error) {
	args := m.Called(ctx, customerID, origin)
	return args.String(0), args.Error(1)
}

// =====================
// Helper
// =====================

// 公開中の商品を1件作る
func activeProduct(id string, name string, price int64) model.Product {
	return model.Product{
		ID:       id,
		UserID:   "owner-1",
		Name:     name,
		Price:    price,
		IsActive: true,
	}
}

type fixedIDGen struct {
	id string
}

func (g *fixedIDGen) NewID() string { return g.id }

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }
