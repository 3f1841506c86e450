package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
	"github.com/josh-kwaku/campus-ledger/internal/service"
)

type lookupService interface {
	StudentWallet(ctx context.Context, studentID int64) (*service.WalletView, error)
	StudentGrades(ctx context.Context, studentID int64) ([]domain.GradeRecord, error)
	GradeAuditTrail(ctx context.Context, studentID, offeringID int64) ([]domain.MarkAudit, error)
}

type LookupHandler struct {
	lookups lookupService
}

func NewLookupHandler(lookups lookupService) *LookupHandler {
	return &LookupHandler{lookups: lookups}
}

type receiptDTO struct {
	ID        int64           `json:"receipt_id"`
	TermID    int64           `json:"term_id"`
	WalletID  int64           `json:"wallet_id"`
	KindCode  string          `json:"kind_code"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

type walletDTO struct {
	WalletID       int64           `json:"wallet_id"`
	StudentID      int64           `json:"student_id"`
	Balance        decimal.Decimal `json:"balance"`
	RecentReceipts []receiptDTO    `json:"recent_receipts"`
}

type gradeDTO struct {
	OfferingID int64   `json:"offering_id"`
	UnitCode   string  `json:"unit_code"`
	TermCode   string  `json:"term_code"`
	Grade      *string `json:"grade"`
	Status     string  `json:"status"`
}

type auditDTO struct {
	AuditID   int64     `json:"audit_id"`
	OldGrade  *string   `json:"old_grade"`
	NewGrade  string    `json:"new_grade"`
	ByTutor   int64     `json:"by_tutor"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *LookupHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r, "student_id")
	if !ok {
		return
	}

	view, err := h.lookups.StudentWallet(r.Context(), studentID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	receipts := make([]receiptDTO, 0, len(view.RecentReceipts))
	for _, rc := range view.RecentReceipts {
		receipts = append(receipts, receiptDTO{
			ID:        rc.ID,
			TermID:    rc.TermID,
			WalletID:  rc.WalletID,
			KindCode:  string(rc.KindCode),
			Amount:    rc.Amount,
			CreatedAt: rc.CreatedAt,
		})
	}

	RespondSuccess(w, http.StatusOK, walletDTO{
		WalletID:       view.Wallet.ID,
		StudentID:      view.Wallet.Owner.StudentID,
		Balance:        view.Wallet.Balance,
		RecentReceipts: receipts,
	})
}

func (h *LookupHandler) Grades(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r, "student_id")
	if !ok {
		return
	}

	records, err := h.lookups.StudentGrades(r.Context(), studentID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	grades := make([]gradeDTO, 0, len(records))
	for _, g := range records {
		grades = append(grades, gradeDTO{
			OfferingID: g.OfferingID,
			UnitCode:   g.UnitCode,
			TermCode:   g.TermCode,
			Grade:      g.Grade,
			Status:     string(g.Status),
		})
	}
	RespondSuccess(w, http.StatusOK, grades)
}

func (h *LookupHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r, "student_id")
	if !ok {
		return
	}
	offeringID, ok := pathID(w, r, "offering_id")
	if !ok {
		return
	}

	audits, err := h.lookups.GradeAuditTrail(r.Context(), studentID, offeringID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	out := make([]auditDTO, 0, len(audits))
	for _, a := range audits {
		out = append(out, auditDTO{
			AuditID:   a.ID,
			OldGrade:  a.OldGrade,
			NewGrade:  a.NewGrade,
			ByTutor:   a.ByTutor,
			CreatedAt: a.CreatedAt,
		})
	}
	RespondSuccess(w, http.StatusOK, out)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		RespondValidationError(w, []FieldError{{Field: name, Message: "must be a positive integer"}})
		return 0, false
	}
	return id, true
}
