package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"photohive/pkg/logger"
)

// RequestLogger writes one access-log line per request through the
// application logger, so access lines share its level filter and rotation.
// The request id set by the RequestID middleware is attached to the request
// context for the *Context loggers.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logger.ContextWithRequestID(req.Context(), id)))
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			latency := time.Since(start)
			requestID := res.Header().Get(echo.HeaderXRequestID)

			if res.Status >= 500 {
				logger.Error("%s %s -> %d (%v) id=%s", req.Method, req.URL.Path, res.Status, latency, requestID)
			} else {
				logger.Info("%s %s -> %d (%v) id=%s", req.Method, req.URL.Path, res.Status, latency, requestID)
			}
			return nil
		}
	}
}
