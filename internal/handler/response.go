package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError, details any) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Data:    nil,
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

func RespondValidationError(w http.ResponseWriter, fields []FieldError) {
	RespondAppError(w, ErrValidationFailed, fields)
}

func RespondDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		RespondValidationError(w, fieldErrors(verr))
		return
	}

	var appErr *AppError

	switch {
	case errors.Is(err, domain.ErrValidation):
		appErr = ErrValidationFailed
	case errors.Is(err, domain.ErrTermNotFound):
		appErr = ErrTermNotFound
	case errors.Is(err, domain.ErrChargeNotFound):
		appErr = ErrChargeNotFound
	case errors.Is(err, domain.ErrWalletNotFound):
		appErr = ErrWalletNotFound
	case errors.Is(err, domain.ErrEnrolmentNotFound):
		appErr = ErrEnrolmentNotFound
	case errors.Is(err, domain.ErrTutorNotFound):
		appErr = ErrTutorNotFound
	case errors.Is(err, domain.ErrNotFound):
		appErr = ErrResourceNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		appErr = ErrInsufficientFunds
	case errors.Is(err, domain.ErrLockTimeout):
		appErr = ErrLockTimeout
	case errors.Is(err, domain.ErrStorage):
		slog.Error("storage failure", "error", err)
		appErr = ErrStorage
	default:
		slog.Error("unhandled domain error", "error", err)
		appErr = ErrInternalError
	}

	RespondAppError(w, appErr, nil)
}

var ruleMessages = map[string]string{
	"required":     "required",
	"gt":           "must be greater than 0",
	"max":          "too long",
	"min":          "must be at least 1",
	"money":        "must be a positive amount below 10000000000 with at most 2 decimal places",
	"payment_kind": "must be CARD, ACH, or CASH",
}

func fieldErrors(verr *domain.ValidationError) []FieldError {
	fields := make([]FieldError, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		msg, ok := ruleMessages[v.Rule]
		if !ok {
			msg = "invalid"
		}
		fields = append(fields, FieldError{Field: v.Field, Message: msg})
	}
	return fields
}
