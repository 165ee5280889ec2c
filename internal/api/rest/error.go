package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeForbidden        ErrorCode = "forbidden"
	errCodePaymentRequired  ErrorCode = "payment_required"
	errCodeConflict         ErrorCode = "conflict"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondContractError maps ledger errors onto HTTP statuses. Anything not in
// the sentinel taxonomy is treated as an internal failure.
func respondContractError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNonexistentToken):
		respondWithError(c, http.StatusNotFound, errCodeNotFound, "Token does not exist")

	case errors.Is(err, domain.ErrZeroAddressTarget),
		errors.Is(err, domain.ErrQuantityZero),
		errors.Is(err, domain.ErrQuantityInvalid),
		errors.Is(err, domain.ErrAllowlistProofInvalid):
		respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", err.Error())

	case errors.Is(err, domain.ErrNotOwnerOrApproved),
		errors.Is(err, domain.ErrNotContractOwner),
		errors.Is(err, domain.ErrNotDirectCaller):
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Not allowed", err.Error())

	case errors.Is(err, domain.ErrInsufficientPayment):
		respondWithError(c, http.StatusPaymentRequired, errCodePaymentRequired, "Insufficient payment", err.Error())

	case errors.Is(err, domain.ErrPaused),
		errors.Is(err, domain.ErrStageNotActive),
		errors.Is(err, domain.ErrStageCooldown),
		errors.Is(err, domain.ErrStageWindowClosed),
		errors.Is(err, domain.ErrQuotaExceeded),
		errors.Is(err, domain.ErrSupplyExceeded),
		errors.Is(err, domain.ErrLoanStateViolation),
		errors.Is(err, domain.ErrLevelingStateViolation),
		errors.Is(err, domain.ErrReceiverRefused),
		errors.Is(err, domain.ErrReentrancyDetected):
		respondWithError(c, http.StatusConflict, errCodeConflict, "Operation rejected", err.Error())

	default:
		respondInternalError(c, err, "Operation failed")
	}
}
