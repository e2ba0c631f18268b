package handler

import (
	"net/http"
	"time"

	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	cartSessionCookie = "cart_session"
	cartSessionTTL    = 30 * 24 * time.Hour
)

// 買い物客のカゴAPI。cart_session cookieでカゴを識別する（認証なし）。
type CartHandler struct {
	uc           *usecase.CartUsecase
	cookieSecure bool
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{
		uc:           uc,
		cookieSecure: envBool("COOKIE_SECURE", true),
	}
}

// カゴのルートを登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/cart", h.get)
	e.POST("/cart/items", h.addItem)
	e.PATCH("/cart/items/:id", h.updateItem)
	e.DELETE("/cart/items/:id", h.removeItem)
	e.DELETE("/cart", h.clear)
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) get(c echo.Context) error {
	sessionID := h.ensureSession(c)

	state, err := h.uc.GetCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, state)
}

func (h *CartHandler) addItem(c echo.Context) error {
	sessionID := h.ensureSession(c)

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	state, err := h.uc.AddItem(c.Request().Context(), sessionID, usecase.AddCartItemInput{
		ProductID: req.ProductID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, state)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	sessionID := h.ensureSession(c)

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	state, err := h.uc.UpdateItem(c.Request().Context(), sessionID, c.Param("id"), usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, state)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	sessionID := h.ensureSession(c)

	state, err := h.uc.RemoveItem(c.Request().Context(), sessionID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, state)
}

func (h *CartHandler) clear(c echo.Context) error {
	sessionID := h.ensureSession(c)

	state, err := h.uc.ClearCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, state)
}

// cart_session cookieを読む。無ければUUIDを発行してセットする。
func (h *CartHandler) ensureSession(c echo.Context) string {
	if cookie, err := c.Cookie(cartSessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.NewString()

	c.SetCookie(&http.Cookie{
		Name:     cartSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cartSessionTTL),
	})

	return sessionID
}
