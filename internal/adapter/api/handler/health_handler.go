package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"photohive/pkg/response"
)

type HealthHandler struct{}

var healthHandler *HealthHandler

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func SetupHealthHandler() {
	healthHandler = NewHealthHandler()
}

func GetHealthHandler() *HealthHandler {
	if healthHandler == nil {
		SetupHealthHandler()
	}
	return healthHandler
}

func (h *HealthHandler) Index(c echo.Context) error {
	return response.Message(c, "Hello from INDEX")
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}
