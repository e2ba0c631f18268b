package main

import (
	"context"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRedis "storefront/internal/infra/redis"
	infraRepo "storefront/internal/infra/repository"
	infraStripe "storefront/internal/infra/stripe"
	"storefront/internal/logger"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/validator"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.RefreshToken{},
		&model.Product{},
		&model.PixKey{},
		&model.Payment{},
	); err != nil {
		log.Fatal("auto migrate failed", zap.Error(err))
	}

	//Redis接続（カゴのセッション保存先）
	redisClient, err := infraRedis.Connect(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}

	//Stripeゲートウェイ
	stripeClient := infraStripe.NewClient(
		cfg.StripeSecretKey,
		cfg.StripeWebhookSecret,
		cfg.StripePremiumPriceID,
	)

	//Repository（GORM実装＋Redis実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	pixKeyRepo := infraRepo.NewPixKeyGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	cartStore := infraRepo.NewCartRedisStore(redisClient, 30*24*time.Hour)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//refresh TTL
	refreshTTL := 14 * 24 * time.Hour

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, profileRepo, hasher, idGen, clock)
	loginUC := auth.NewLoginUsecase(userRepo, rtRepo, verifier, issuer, idGen, clock, refreshTTL)
	refreshUC := auth.NewRefreshUsecase(userRepo, rtRepo, issuer, idGen, clock, refreshTTL)
	logoutUC := auth.NewLogoutUsecase(rtRepo, clock)

	productUC := usecase.NewProductUsecase(productRepo, userRepo, idGen, clock)
	cartUC := usecase.NewCartUsecase(cartStore, productRepo, log)
	paymentUC := usecase.NewPaymentUsecase(
		pixKeyRepo, paymentRepo, userRepo,
		validator.NewPaymentValidator(), idGen, clock,
	)
	pixKeyUC := usecase.NewPixKeyUsecase(pixKeyRepo, idGen, clock)
	billingUC := usecase.NewBillingUsecase(profileRepo, userRepo, stripeClient)
	webhookUC := usecase.NewWebhookUsecase(profileRepo, log)

	//Handler生成
	authH := handler.NewAuthHandler(registerUC, loginUC, refreshUC, logoutUC, refreshTTL)
	productH := handler.NewProductHandler(productUC)
	cartH := handler.NewCartHandler(cartUC)
	paymentH := handler.NewPaymentHandler(paymentUC)
	pixKeyH := handler.NewPixKeyHandler(pixKeyUC)
	billingH := handler.NewBillingHandler(billingUC, cfg.SiteURL)
	webhookH := handler.NewWebhookHandler(stripeClient, webhookUC, log)

	//Server起動
	e := server.New(log)
	server.RegisterRoutes(e, cfg, authH, productH, cartH, paymentH, pixKeyH, billingH, webhookH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info("server starting", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
