package router

import (
	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo) {
	SetupPhotoRouter(e)
	SetupTagRouter(e)
	SetupHealthRouter(e)
}
