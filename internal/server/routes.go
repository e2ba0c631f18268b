package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

// RegisterRoutesは全ハンドラのルートをまとめて登録する。
func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	productH *handler.ProductHandler,
	cartH *handler.CartHandler,
	paymentH *handler.PaymentHandler,
	pixKeyH *handler.PixKeyHandler,
	billingH *handler.BillingHandler,
	webhookH *handler.WebhookHandler,
) {
	authH.RegisterRoutes(e)
	productH.RegisterRoutes(e, cfg)
	cartH.RegisterRoutes(e)
	paymentH.RegisterRoutes(e, cfg)
	pixKeyH.RegisterRoutes(e, cfg)
	billingH.RegisterRoutes(e, cfg)
	webhookH.RegisterRoutes(e)
}
