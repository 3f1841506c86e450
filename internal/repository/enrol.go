package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

type EnrolRepository struct {
	db *sql.DB
}

func NewEnrolRepository(db *sql.DB) *EnrolRepository {
	return &EnrolRepository{db: db}
}

func (r *EnrolRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, studentID, offeringID int64) (*domain.Enrolment, error) {
	var e domain.Enrolment
	var grade sql.NullString
	err := tx.QueryRowContext(ctx,
		`SELECT student_id, offering_id, grade, estatus FROM campus.enrol
		WHERE student_id = $1 AND offering_id = $2 FOR UPDATE`,
		studentID, offeringID,
	).Scan(&e.StudentID, &e.OfferingID, &grade, &e.Status)
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("GetForUpdate: student %d offering %d: %w", studentID, offeringID, domain.ErrEnrolmentNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	if grade.Valid {
		e.Grade = &grade.String
	}
	return &e, nil
}

func (r *EnrolRepository) UpdateGrade(ctx context.Context, tx *sql.Tx, studentID, offeringID int64, grade string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE campus.enrol SET grade = $1 WHERE student_id = $2 AND offering_id = $3`,
		grade, studentID, offeringID,
	)
	if err != nil {
		return fmt.Errorf("UpdateGrade: %w", err)
	}
	return mustAffectOne(res, "UpdateGrade", domain.ErrEnrolmentNotFound)
}

func (r *EnrolRepository) ListGradesByStudent(ctx context.Context, studentID int64) ([]domain.GradeRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.student_id, e.offering_id, o.unit_code, t.code, e.grade, e.estatus
		FROM campus.enrol e
		JOIN campus.offering o ON o.offering_id = e.offering_id
		JOIN campus.term t ON t.term_id = o.term_id
		WHERE e.student_id = $1
		ORDER BY t.code DESC, o.unit_code`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListGradesByStudent: %w", err)
	}
	defer rows.Close()

	var records []domain.GradeRecord
	for rows.Next() {
		var g domain.GradeRecord
		var grade sql.NullString
		if err := rows.Scan(&g.StudentID, &g.OfferingID, &g.UnitCode, &g.TermCode, &grade, &g.Status); err != nil {
			return nil, fmt.Errorf("ListGradesByStudent: scan: %w", err)
		}
		if grade.Valid {
			g.Grade = &grade.String
		}
		records = append(records, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListGradesByStudent: rows: %w", err)
	}
	return records, nil
}
