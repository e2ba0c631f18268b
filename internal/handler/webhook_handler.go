package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// 署名ヘッダを検証してイベントを復元する約束。実装はinternal/infra/stripe。
type WebhookParser interface {
	ParseWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

// Stripe Webhookの受け口。
// 署名NGは400で落とし、状態は一切変えない。
type WebhookHandler struct {
	parser WebhookParser
	uc     *usecase.WebhookUsecase
	logger *zap.Logger
}

// DI
func NewWebhookHandler(parser WebhookParser, uc *usecase.WebhookUsecase, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		parser: parser,
		uc:     uc,
		logger: logger,
	}
}

// Webhookルートを登録（認証なし、署名で守る）
func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhooks/stripe", h.handle)
}

func (h *WebhookHandler) handle(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//署名検証
	event, err := h.parser.ParseWebhook(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid signature"})
	}

	switch event.Type {
	case "checkout.session.completed":
		return h.checkoutCompleted(c, event)
	case "customer.subscription.deleted":
		return h.subscriptionDeleted(c, event)
	default:
		// 知らないイベントは受領だけして流す
		return c.JSON(http.StatusOK, SuccessResponse{Message: "ignored"})
	}
}

func (h *WebhookHandler) checkoutCompleted(c echo.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event payload"})
	}

	customerID := ""
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	subscriptionID := ""
	if sess.Subscription != nil {
		subscriptionID = sess.Subscription.ID
	}

	err := h.uc.ApplyCheckoutCompleted(
		c.Request().Context(),
		sess.Metadata["user_id"],
		customerID,
		subscriptionID,
	)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}

func (h *WebhookHandler) subscriptionDeleted(c echo.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event payload"})
	}

	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	if err := h.uc.ApplySubscriptionDeleted(c.Request().Context(), customerID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}
