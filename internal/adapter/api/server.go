package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"photohive/internal/adapter/api/handler"
	apimiddleware "photohive/internal/adapter/api/middleware"
	"photohive/internal/adapter/api/router"
	"photohive/internal/usecase"
	"photohive/pkg/response"
)

type ServerOptions struct {
	RequestTimeout time.Duration
	MaxImageBytes  int64
}

// NewServer builds the echo instance serving the photo and tag routes.
func NewServer(photoUseCase *usecase.PhotoUseCase, opts ServerOptions) *echo.Echo {
	handler.Setup(photoUseCase)
	handler.SetupHealthHandler()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = response.ErrorHandler
	e.Validator = NewValidator()

	apimiddleware.Apply(e, apimiddleware.StackOptions{
		RequestTimeout: opts.RequestTimeout,
		MaxImageBytes:  opts.MaxImageBytes,
	})

	router.Setup(e)
	return e
}
