package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrTermNotFound      = &AppError{http.StatusNotFound, "TERM_NOT_FOUND", "Term not found"}
	ErrChargeNotFound    = &AppError{http.StatusNotFound, "CHARGE_NOT_FOUND", "No charge for this student and term"}
	ErrWalletNotFound    = &AppError{http.StatusNotFound, "WALLET_NOT_FOUND", "Wallet not found"}
	ErrEnrolmentNotFound = &AppError{http.StatusNotFound, "ENROLMENT_NOT_FOUND", "Student is not enrolled in this offering"}
	ErrTutorNotFound     = &AppError{http.StatusNotFound, "TUTOR_NOT_FOUND", "Tutor not found"}
	ErrInsufficientFunds = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds"}
	ErrLockTimeout       = &AppError{http.StatusServiceUnavailable, "LOCK_TIMEOUT", "Timed out waiting for a row lock, please retry"}
	ErrStorage           = &AppError{http.StatusInternalServerError, "STORAGE_ERROR", "The ledger store failed to complete the request"}
)
