package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
	"github.com/josh-kwaku/campus-ledger/internal/service/txn"
)

type mockTuitionService struct {
	got txn.PaymentRequest
	err error
}

func (m *mockTuitionService) RunPayment(_ context.Context, req txn.PaymentRequest) (*txn.PaymentResult, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return &txn.PaymentResult{
		Receipt: domain.Receipt{
			ID:        41,
			StudentID: req.StudentID,
			TermID:    3,
			WalletID:  70,
			KindCode:  req.KindCode,
			Amount:    req.Amount,
			CreatedAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		},
		Charge: domain.Charge{DueAmt: decimal.NewFromInt(5000), PaidAmt: req.Amount},
		State:  txn.StateCommitted,
	}, nil
}

func TestTuitionHandler_Pay(t *testing.T) {
	svc := &mockTuitionService{}
	h := NewTuitionHandler(svc)

	body := `{"student_id": 7, "term_code": "2025FA", "kind_code": "CARD", "amount": "412.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/txn/pay-tuition", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Pay(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.got.StudentID)
	assert.Equal(t, domain.PaymentKindCard, svc.got.KindCode)
	assert.True(t, svc.got.Amount.Equal(decimal.RequireFromString("412.5")))

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var data payTuitionResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(41), data.ReceiptID)
	assert.Contains(t, data.Message, "Payment of $412.50 processed")
	assert.True(t, data.PaidAmt.Equal(decimal.RequireFromString("412.5")))
	assert.True(t, data.Outstanding.Equal(decimal.RequireFromString("4587.5")))
}

func TestTuitionHandler_PayNumericAmount(t *testing.T) {
	svc := &mockTuitionService{}
	h := NewTuitionHandler(svc)

	body := `{"student_id": 7, "term_code": "2025FA", "kind_code": "ACH", "amount": 325}`
	rec := httptest.NewRecorder()
	h.Pay(rec, httptest.NewRequest(http.MethodPost, "/api/txn/pay-tuition", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.got.Amount.Equal(decimal.NewFromInt(325)))
}

func TestTuitionHandler_PayErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed json",
			body:       `{"student_id": `,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "validation",
			body:       `{"student_id": 7}`,
			err:        domain.NewValidationError(domain.FieldViolation{Field: "term_code", Rule: "required"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "insufficient funds",
			body:       `{"student_id": 7, "term_code": "2025FA", "kind_code": "CARD", "amount": 325}`,
			err:        domain.ErrInsufficientFunds,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_FUNDS",
		},
		{
			name:       "charge missing",
			body:       `{"student_id": 7, "term_code": "2025FA", "kind_code": "CARD", "amount": 325}`,
			err:        domain.ErrChargeNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "CHARGE_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTuitionHandler(&mockTuitionService{err: tt.err})
			rec := httptest.NewRecorder()

			h.Pay(rec, httptest.NewRequest(http.MethodPost, "/api/txn/pay-tuition", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}
