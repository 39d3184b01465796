package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidRequest           = "INVALID_REQUEST"
	CodeInvalidPayload           = "INVALID_PAYLOAD"
	CodeUnsupportedImageFormat   = "UNSUPPORTED_IMAGE_FORMAT"
	CodeInvalidImageDimensions   = "INVALID_IMAGE_DIMENSIONS"
	CodePayloadTooLarge          = "PAYLOAD_TOO_LARGE"
	CodeBlobStoreUnavailable     = "BLOB_STORE_UNAVAILABLE"
	CodeMetadataStoreUnavailable = "METADATA_STORE_UNAVAILABLE"
	CodeNotFound                 = "NOT_FOUND"
	CodeConflict                 = "CONFLICT"
	CodeInternal                 = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found.", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func InvalidPayload(err error) *AppError {
	return &AppError{
		Code:    CodeInvalidPayload,
		Message: "Invalid request. Image is not valid base64.",
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func UnsupportedImageFormat(err error) *AppError {
	return &AppError{
		Code:    CodeUnsupportedImageFormat,
		Message: "Invalid request. Unsupported image format.",
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func InvalidImageDimensions(width, height int) *AppError {
	return &AppError{
		Code:    CodeInvalidImageDimensions,
		Message: fmt.Sprintf("Invalid request. Image dimensions %dx%d are not usable.", width, height),
		Status:  http.StatusBadRequest,
	}
}

func PayloadTooLarge(limit int64) *AppError {
	return &AppError{
		Code:    CodePayloadTooLarge,
		Message: fmt.Sprintf("Invalid request. Image exceeds %d bytes.", limit),
		Status:  http.StatusBadRequest,
	}
}

func BlobStoreUnavailable(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBlobStoreUnavailable,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func MetadataStoreUnavailable(message string, err error) *AppError {
	return &AppError{
		Code:    CodeMetadataStoreUnavailable,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// StatusOf returns the HTTP status carried by err, 500 for anything that is
// not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
