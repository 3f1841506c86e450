package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
	"github.com/josh-kwaku/campus-ledger/internal/logging"
	"github.com/josh-kwaku/campus-ledger/internal/service/txn"
)

type tuitionService interface {
	RunPayment(ctx context.Context, req txn.PaymentRequest) (*txn.PaymentResult, error)
}

type TuitionHandler struct {
	payments tuitionService
}

func NewTuitionHandler(payments tuitionService) *TuitionHandler {
	return &TuitionHandler{payments: payments}
}

type payTuitionRequest struct {
	StudentID int64           `json:"student_id"`
	TermCode  string          `json:"term_code"`
	KindCode  string          `json:"kind_code"`
	Amount    decimal.Decimal `json:"amount"`
}

type payTuitionResponse struct {
	Message     string          `json:"message"`
	ReceiptID   int64           `json:"receipt_id"`
	StudentID   int64           `json:"student_id"`
	TermCode    string          `json:"term_code"`
	KindCode    string          `json:"kind_code"`
	Amount      decimal.Decimal `json:"amount"`
	WalletID    int64           `json:"wallet_id"`
	PaidAmt     decimal.Decimal `json:"paid_amt"`
	DueAmt      decimal.Decimal `json:"due_amt"`
	Outstanding decimal.Decimal `json:"outstanding"`
	CreatedAt   time.Time       `json:"created_at"`
	DurationMS  int64           `json:"duration_ms"`
}

func (h *TuitionHandler) Pay(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	start := time.Now()

	var req payTuitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	res, err := h.payments.RunPayment(r.Context(), txn.PaymentRequest{
		StudentID: req.StudentID,
		TermCode:  req.TermCode,
		KindCode:  domain.PaymentKind(req.KindCode),
		Amount:    req.Amount,
	})
	if err != nil {
		log.Warn("tuition payment failed", "student_id", req.StudentID, "error", err)
		RespondDomainError(w, err)
		return
	}

	elapsed := time.Since(start)
	RespondSuccess(w, http.StatusOK, payTuitionResponse{
		Message:     fmt.Sprintf("Payment of $%s processed in %d ms.", req.Amount.StringFixed(2), elapsed.Milliseconds()),
		ReceiptID:   res.Receipt.ID,
		StudentID:   res.Receipt.StudentID,
		TermCode:    req.TermCode,
		KindCode:    string(res.Receipt.KindCode),
		Amount:      res.Receipt.Amount,
		WalletID:    res.Receipt.WalletID,
		PaidAmt:     res.Charge.PaidAmt,
		DueAmt:      res.Charge.DueAmt,
		Outstanding: res.Charge.Outstanding(),
		CreatedAt:   res.Receipt.CreatedAt,
		DurationMS:  elapsed.Milliseconds(),
	})
}
