package router

import (
	"photohive/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupPhotoRouter(e *echo.Echo) {
	photoHandler := handler.GetPhotoHandler()

	photos := e.Group("/photos")
	photos.GET("", photoHandler.ListPhotos)
	photos.PUT("", photoHandler.CreatePhoto)
	photos.GET("/:id", photoHandler.GetPhoto)
	photos.DELETE("/:id", photoHandler.DeletePhoto)
}
