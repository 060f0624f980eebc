package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/astromaster/pkg/errors"
)

// HTTPError is the transport view of a failed request.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// errorResponse is the envelope written for every failure:
// {"error":{"code":"...","message":"..."}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// domainStatus maps service error codes onto HTTP statuses. Codes missing
// here surface as 500 with the caller's fallback code.
var domainStatus = map[string]int{
	apperrors.CodeInvalidInput:       http.StatusBadRequest,
	apperrors.CodeInvalidCredentials: http.StatusUnauthorized,
	apperrors.CodeInvalidToken:       http.StatusUnauthorized,
	apperrors.CodeUserNotFound:       http.StatusNotFound,
	apperrors.CodeUsernameExists:     http.StatusConflict,
	apperrors.CodeLinkingDisabled:    http.StatusConflict,
	apperrors.CodeAuthNotConfigured:  http.StatusServiceUnavailable,
	apperrors.CodeOAuthExchange:      http.StatusBadGateway,
}

// invalid_input is reported to clients under the transport's own name.
var publicCode = map[string]string{
	apperrors.CodeInvalidInput: "invalid_request",
}

func newHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func badRequest(err error) *HTTPError {
	return newHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
}

func unauthorized(message string) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, "unauthorized", message, nil)
}

// fromDomain translates a service error. fallbackCode names unexpected failures.
func fromDomain(err error, fallbackCode string) *HTTPError {
	code := apperrors.CodeOf(err)
	status, known := domainStatus[code]
	if !known {
		return newHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
	}
	if public, ok := publicCode[code]; ok {
		code = public
	}
	return newHTTPError(status, code, errMessage(err), err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return newHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
