package server

import (
	"storefront/internal/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Newはechoインスタンスを組み立てる。
func New(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(logger.RequestLogger(log))

	return e
}

// Startはサーバーを起動する。
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
