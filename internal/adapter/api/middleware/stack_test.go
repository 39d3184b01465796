package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"photohive/pkg/logger"
)

func TestBodyLimit(t *testing.T) {
	assert.Equal(t, "16M", BodyLimit(0))
	// 3 MiB decoded -> 4 MiB encoded + 64 KiB envelope.
	assert.Equal(t, "4160K", BodyLimit(3<<20))
}

func TestApplyRejectsOversizedBody(t *testing.T) {
	e := echo.New()
	Apply(e, StackOptions{MaxImageBytes: 3})
	e.PUT("/photos", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	body := strings.Repeat("a", 200*1024)
	req := httptest.NewRequest(http.MethodPut, "/photos", strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestApplySetsRequestID(t *testing.T) {
	e := echo.New()
	Apply(e, StackOptions{})
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}

func TestRequestIDReachesHandlerContext(t *testing.T) {
	e := echo.New()
	Apply(e, StackOptions{})

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = logger.RequestID(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), seen)
}
