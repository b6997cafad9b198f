package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":          http.StatusNotFound,
	"ITEM_NOT_FOUND":     http.StatusNotFound,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInternal:      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation codes (INVALID_*) map to 400; anything unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
