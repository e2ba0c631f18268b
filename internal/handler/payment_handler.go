package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// オーナーのPIX支払いAPI
type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

// DI
func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// 支払いルートを登録（要認証）
func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/payments")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/pix", h.createPix)
	g.GET("", h.list)
}

type paymentCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
}

type createPixPaymentRequest struct {
	Amount      int64                  `json:"amount"` // センターボ
	Description string                 `json:"description"`
	Customer    paymentCustomerRequest `json:"customer"`
}

// POST /payments/pix
func (h *PaymentHandler) createPix(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req createPixPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreatePixPayment(c.Request().Context(), userID, usecase.CreatePixPaymentInput{
		Amount:      req.Amount,
		Description: req.Description,
		Customer: usecase.PaymentCustomerInput{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			CPF:   req.Customer.CPF,
		},
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// GET /payments
func (h *PaymentHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	payments, err := h.uc.ListPayments(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, payments)
}
