package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the table fall through to the prefix rules in
// GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	// Checkout and stock
	"EMPTY_CART":             http.StatusBadRequest,
	"INSUFFICIENT_STOCK":     http.StatusConflict,
	"ORDER_NUMBER_EXHAUSTED": http.StatusServiceUnavailable,
	"PERSISTENCE_FAILED":     http.StatusServiceUnavailable,

	// Order workflow
	"INVALID_STATE":  http.StatusUnprocessableEntity,
	"INVALID_REASON": http.StatusUnprocessableEntity,

	// Catalog
	"DUPLICATE_SLUG":    http.StatusConflict,
	"DUPLICATE_VARIANT": http.StatusConflict,

	// Promo codes
	"DUPLICATE_CODE": http.StatusConflict,
	"PROMO_INACTIVE": http.StatusUnprocessableEntity,
	"PROMO_EXPIRED":  http.StatusUnprocessableEntity,

	// Identity
	"EMAIL_TAKEN":         http.StatusConflict,
	"ADMIN_LIMIT":         http.StatusConflict,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Validation-style codes (INVALID_*) default to 400, everything
// unknown to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
