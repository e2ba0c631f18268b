package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// オーナーのPIX受取キー設定
type PixKeyHandler struct {
	uc *usecase.PixKeyUsecase
}

// DI
func NewPixKeyHandler(uc *usecase.PixKeyUsecase) *PixKeyHandler {
	return &PixKeyHandler{uc: uc}
}

// ルートを登録（要認証）
func (h *PixKeyHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))

	admin.GET("/pix-key", h.get)
	admin.PUT("/pix-key", h.save)
}

type savePixKeyRequest struct {
	Type string `json:"type"` // email / phone / cpf / cnpj / random
	Key  string `json:"key"`
}

// GET /admin/pix-key
func (h *PixKeyHandler) get(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	key, err := h.uc.GetPixKey(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, key)
}

// PUT /admin/pix-key（1オーナー1キーの上書き）
func (h *PixKeyHandler) save(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req savePixKeyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	key, err := h.uc.SavePixKey(c.Request().Context(), userID, usecase.SavePixKeyInput{
		Type: req.Type,
		Key:  req.Key,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, key)
}
