package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself. Domain error codes come
// from shared.DomainError and are mapped below.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall through to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Auth
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,

	// Subscription gating
	"PAYMENT_REQUIRED": http.StatusPaymentRequired,

	// Resources
	"NOT_FOUND":            http.StatusNotFound,
	"USER_NOT_FOUND":       http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONFLICT":             http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"SLUG_TAKEN":           http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"CODE_TAKEN":           http.StatusConflict,
	"SKU_TAKEN":            http.StatusConflict,
	"ALREADY_PAID_OUT":     http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"ITEM_NOT_AVAILABLE":   http.StatusUnprocessableEntity,
	"ITEM_SOLD":            http.StatusUnprocessableEntity,
	"ALREADY_SOLD":         http.StatusUnprocessableEntity,
	"ALREADY_SYNCED":       http.StatusUnprocessableEntity,
	"CONSIGNOR_NOT_ACTIVE": http.StatusUnprocessableEntity,
	"CONSIGNOR_REQUIRED":   http.StatusUnprocessableEntity,
	"CURRENCY_MISMATCH":    http.StatusUnprocessableEntity,
	"EMPTY_PAYOUT":         http.StatusUnprocessableEntity,
	"NOTHING_TO_PAY":       http.StatusUnprocessableEntity,
	"WRONG_CONSIGNOR":      http.StatusUnprocessableEntity,
	"OUT_OF_PERIOD":        http.StatusUnprocessableEntity,
	"HAS_UNPAID_SALES":     http.StatusConflict,

	// Rate limiting
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation-style codes (INVALID_*) map to 400, ALREADY_* state codes
// to 422, anything unknown to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasPrefix(code, "ALREADY_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
