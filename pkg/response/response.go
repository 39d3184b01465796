package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "photohive/pkg/errors"
)

type DataResponse struct {
	Data interface{} `json:"data"`
}

type BodyResponse struct {
	Body interface{} `json:"body"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, DataResponse{Data: data})
}

// Body writes the `{body: ...}` envelope used by the upload endpoint.
func Body(c echo.Context, body interface{}) error {
	return c.JSON(http.StatusOK, BodyResponse{Body: body})
}

func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, ErrorResponse{Error: appErr.Message})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, ErrorResponse{Error: httpErrorMessage(httpErr)})
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "An unexpected error occurred",
	})
}

func httpErrorMessage(httpErr *echo.HTTPError) string {
	switch httpErr.Code {
	case http.StatusNotFound:
		return "Not found!"
	case http.StatusMethodNotAllowed:
		return "Method not allowed."
	case http.StatusRequestEntityTooLarge:
		return "Request body too large."
	case http.StatusServiceUnavailable:
		return "Request timed out."
	}
	if httpErr.Code >= http.StatusInternalServerError {
		return "An unexpected error occurred"
	}
	return http.StatusText(httpErr.Code)
}

// ErrorHandler renders every error that escapes a handler with the same
// `{error: ...}` envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if writeErr := Error(c, err); writeErr != nil {
		c.Logger().Error(writeErr)
	}
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	for _, err := range validationErr {
		field := strings.ToLower(err.Field())
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = "Invalid request. Missing required fields: " + field
		case "min":
			message = field + " must be at least " + param
		case "max":
			message = field + " must be at most " + param
		default:
			message = field + " is invalid"
		}

		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
	}

	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request. Missing required fields.",
	})
}
