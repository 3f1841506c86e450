package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

const markAuditColumns = `audit_id, student_id, offering_id, old_grade, new_grade, by_tutor, created_at`

type MarkAuditRepository struct {
	db *sql.DB
}

func NewMarkAuditRepository(db *sql.DB) *MarkAuditRepository {
	return &MarkAuditRepository{db: db}
}

func (r *MarkAuditRepository) Create(ctx context.Context, tx *sql.Tx, audit *domain.MarkAudit) error {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO campus.mark_audit (student_id, offering_id, old_grade, new_grade, by_tutor)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING audit_id, created_at`,
		audit.StudentID, audit.OfferingID, audit.OldGrade, audit.NewGrade, audit.ByTutor,
	).Scan(&audit.ID, &audit.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *MarkAuditRepository) ListByEnrolment(ctx context.Context, studentID, offeringID int64) ([]domain.MarkAudit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+markAuditColumns+` FROM campus.mark_audit
		WHERE student_id = $1 AND offering_id = $2 ORDER BY audit_id`,
		studentID, offeringID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByEnrolment: %w", err)
	}
	defer rows.Close()

	var audits []domain.MarkAudit
	for rows.Next() {
		a, err := scanMarkAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByEnrolment: scan: %w", err)
		}
		audits = append(audits, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByEnrolment: rows: %w", err)
	}
	return audits, nil
}

func scanMarkAudit(s scanner) (*domain.MarkAudit, error) {
	var a domain.MarkAudit
	var oldGrade sql.NullString
	err := s.Scan(&a.ID, &a.StudentID, &a.OfferingID, &oldGrade, &a.NewGrade, &a.ByTutor, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if oldGrade.Valid {
		a.OldGrade = &oldGrade.String
	}
	return &a, nil
}
