package middleware

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type StackOptions struct {
	RequestTimeout time.Duration
	MaxImageBytes  int64
}

// BodyLimit returns the request size limit for a decoded image limit: base64
// inflates by 4/3, plus headroom for the JSON envelope.
func BodyLimit(maxImageBytes int64) string {
	if maxImageBytes <= 0 {
		return "16M"
	}
	limit := maxImageBytes*4/3 + 64*1024
	return strconv.FormatInt((limit+1023)/1024, 10) + "K"
}

// Apply installs the middleware chain shared by every route.
func Apply(e *echo.Echo, opts StackOptions) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit(BodyLimit(opts.MaxImageBytes)))
	if opts.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeout(opts.RequestTimeout))
	}
}
