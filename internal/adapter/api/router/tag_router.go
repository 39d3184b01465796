package router

import (
	"photohive/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupTagRouter(e *echo.Echo) {
	tagHandler := handler.GetTagHandler()
	e.GET("/tags", tagHandler.SearchTags)
}
