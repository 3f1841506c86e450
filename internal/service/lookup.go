package service

import (
	"context"
	"fmt"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

const recentReceiptLimit = 20

type walletReader interface {
	GetByStudent(ctx context.Context, studentID int64) (*domain.Wallet, error)
}

type receiptReader interface {
	ListByStudent(ctx context.Context, studentID int64, limit int) ([]domain.Receipt, error)
}

type gradeReader interface {
	ListGradesByStudent(ctx context.Context, studentID int64) ([]domain.GradeRecord, error)
}

type auditReader interface {
	ListByEnrolment(ctx context.Context, studentID, offeringID int64) ([]domain.MarkAudit, error)
}

// LookupService serves the read-only views. None of its reads take locks.
type LookupService struct {
	wallets  walletReader
	receipts receiptReader
	grades   gradeReader
	audits   auditReader
}

func NewLookupService(wallets walletReader, receipts receiptReader, grades gradeReader, audits auditReader) *LookupService {
	return &LookupService{wallets: wallets, receipts: receipts, grades: grades, audits: audits}
}

type WalletView struct {
	Wallet         domain.Wallet
	RecentReceipts []domain.Receipt
}

func (s *LookupService) StudentWallet(ctx context.Context, studentID int64) (*WalletView, error) {
	w, err := s.wallets.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("StudentWallet: %w", err)
	}

	receipts, err := s.receipts.ListByStudent(ctx, studentID, recentReceiptLimit)
	if err != nil {
		return nil, fmt.Errorf("StudentWallet: %w", err)
	}

	return &WalletView{Wallet: *w, RecentReceipts: receipts}, nil
}

func (s *LookupService) StudentGrades(ctx context.Context, studentID int64) ([]domain.GradeRecord, error) {
	grades, err := s.grades.ListGradesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("StudentGrades: %w", err)
	}
	return grades, nil
}

func (s *LookupService) GradeAuditTrail(ctx context.Context, studentID, offeringID int64) ([]domain.MarkAudit, error) {
	audits, err := s.audits.ListByEnrolment(ctx, studentID, offeringID)
	if err != nil {
		return nil, fmt.Errorf("GradeAuditTrail: %w", err)
	}
	return audits, nil
}
