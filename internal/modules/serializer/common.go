package serializer

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tonelab-collective/booking/internal/pkg/bookingcheck"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger sets the logger used to record server-side errors.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse acknowledges writes that return no resource.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Err builds an error body; outside release mode the wrapped error is exposed as details.
func Err(errMsg, message string, err error) ErrorResponse {
	res := ErrorResponse{Error: errMsg, Message: message}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Details = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(errMsg string, err error) ErrorResponse {
	if errMsg == "" {
		errMsg = "database error"
	}
	logger.Error(errMsg, zap.Error(err))
	return Err(errMsg, "", err)
}

// ParamErr
func ParamErr(message string, err error) ErrorResponse {
	return Err("Invalid request", message, err)
}

// AuthErr
func AuthErr(msg string) ErrorResponse {
	if msg == "" {
		msg = "Authentication required"
	}
	return ErrorResponse{Error: msg}
}

// NotFound
func NotFound(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ValidationErr lists every failing field so the form can show them together.
func ValidationErr(fields bookingcheck.FieldErrors) ErrorResponse {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return ErrorResponse{
		Error:   "Validation failed",
		Message: strings.Join(msgs, "; "),
		Details: fields,
	}
}
