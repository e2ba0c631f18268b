package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// オーナーのサブスクリプション導線（Stripe）
type BillingHandler struct {
	uc      *usecase.BillingUsecase
	siteURL string // Originヘッダが無いときの戻り先
}

// DI
func NewBillingHandler(uc *usecase.BillingUsecase, siteURL string) *BillingHandler {
	return &BillingHandler{uc: uc, siteURL: siteURL}
}

// ルートを登録（要認証）
func (h *BillingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/billing")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/checkout-session", h.checkoutSession)
	g.POST("/portal-session", h.portalSession)
	g.GET("/status", h.status)
}

// POST /billing/checkout-session
func (h *BillingHandler) checkoutSession(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.CreateCheckoutSession(c.Request().Context(), userID, h.origin(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// POST /billing/portal-session
func (h *BillingHandler) portalSession(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.CreatePortalSession(c.Request().Context(), userID, h.origin(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /billing/status
func (h *BillingHandler) status(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetBillingStatus(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// チェックアウトの戻り先。Originヘッダ優先、無ければ設定のSITE_URL。
func (h *BillingHandler) origin(c echo.Context) string {
	if o := c.Request().Header.Get("Origin"); o != "" {
		return o
	}
	return h.siteURL
}
