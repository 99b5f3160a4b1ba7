package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIError is the JSON body returned by every failed request.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newAPIError(status int, code, message string, cause error) *APIError {
	e := &APIError{Status: status, Code: code, Message: message}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewBadRequestError reports a request the server could not read, such as a
// body that is not multipart.
func NewBadRequestError(message string, cause error) *APIError {
	return newAPIError(http.StatusBadRequest, "BAD_REQUEST", message, cause)
}

// NewValidationError reports a missing or unusable form or query field.
func NewValidationError(field string) *APIError {
	return newAPIError(http.StatusBadRequest, "VALIDATION_ERROR",
		fmt.Sprintf("invalid or missing field: %s", field), nil)
}

// NewNotFoundError reports an unknown job, upload or output file.
func NewNotFoundError(resource, id string) *APIError {
	return newAPIError(http.StatusNotFound, "NOT_FOUND",
		fmt.Sprintf("%s not found: %s", resource, id), nil)
}

// NewUnsupportedFileError rejects an upload without the .opi extension.
func NewUnsupportedFileError(name string) *APIError {
	return newAPIError(http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE",
		fmt.Sprintf("not a convertible display file: %s", name), nil)
}

func NewInternalError(message string, cause error) *APIError {
	return newAPIError(http.StatusInternalServerError, "INTERNAL_ERROR", message, cause)
}

// NewServiceUnavailableError reports an optional feature, like conversion
// history, that this server was started without.
func NewServiceUnavailableError(message string) *APIError {
	return newAPIError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", message, nil)
}

// toAPIError maps any handler error onto the response body. Echo's routing
// errors keep their status; anything else is a 500.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return newAPIError(httpErr.Code, "HTTP_ERROR", fmt.Sprint(httpErr.Message), nil)
	}
	return newAPIError(http.StatusInternalServerError, "INTERNAL_ERROR", "conversion service error", err)
}

// ErrorHandler is installed as the echo HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	apiErr := toAPIError(err)
	_ = c.JSON(apiErr.Status, apiErr)
}
