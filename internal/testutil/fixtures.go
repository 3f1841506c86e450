package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func SeedTerm(t *testing.T, db *sql.DB, code string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO campus.term (code, starts_on, ends_on)
		 VALUES ($1, DATE '2025-08-25', DATE '2025-12-12')
		 RETURNING term_id`,
		code,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed term %s: %v", code, err)
	}
	return id
}

func SeedStudent(t *testing.T, db *sql.DB, studentID int64) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO campus.student (student_id, firstn, lastn) VALUES ($1, $2, $3)
		 ON CONFLICT (student_id) DO NOTHING`,
		studentID, "Student", fmt.Sprintf("No%d", studentID),
	)
	if err != nil {
		t.Fatalf("seed student %d: %v", studentID, err)
	}
}

func SeedTutor(t *testing.T, db *sql.DB, tutorID int64) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO campus.tutor (tutor_id, name) VALUES ($1, $2)
		 ON CONFLICT (tutor_id) DO NOTHING`,
		tutorID, fmt.Sprintf("Tutor %d", tutorID),
	)
	if err != nil {
		t.Fatalf("seed tutor %d: %v", tutorID, err)
	}
}

func SeedOffering(t *testing.T, db *sql.DB, termID int64, unitCode string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO campus.offering (term_id, unit_code, cap) VALUES ($1, $2, 40)
		 RETURNING offering_id`,
		termID, unitCode,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed offering %s: %v", unitCode, err)
	}
	return id
}

// SeedEnrolment enrols an existing student. A nil grade leaves it ungraded.
func SeedEnrolment(t *testing.T, db *sql.DB, studentID, offeringID int64, grade *string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO campus.enrol (student_id, offering_id, grade) VALUES ($1, $2, $3)`,
		studentID, offeringID, grade,
	)
	if err != nil {
		t.Fatalf("seed enrolment %d/%d: %v", studentID, offeringID, err)
	}
}

func SeedCharge(t *testing.T, db *sql.DB, studentID, termID int64, due, paid string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO campus.charge (student_id, term_id, due_amt, paid_amt) VALUES ($1, $2, $3, $4)`,
		studentID, termID, due, paid,
	)
	if err != nil {
		t.Fatalf("seed charge %d/%d: %v", studentID, termID, err)
	}
}

func SeedStudentWallet(t *testing.T, db *sql.DB, studentID int64, balance string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO campus.wallet (owner_type, owner_id, balance) VALUES ('STUDENT', $1, $2)
		 RETURNING wallet_id`,
		studentID, balance,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed wallet for student %d: %v", studentID, err)
	}
	return id
}

func SeedCompanyWallet(t *testing.T, db *sql.DB, balance string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO campus.wallet (owner_type, owner_id, balance) VALUES ('COMPANY', NULL, $1)
		 RETURNING wallet_id`,
		balance,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed company wallet: %v", err)
	}
	return id
}

func GetWalletBalance(t *testing.T, db *sql.DB, walletID int64) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	if err := db.QueryRow(`SELECT balance FROM campus.wallet WHERE wallet_id = $1`, walletID).Scan(&balance); err != nil {
		t.Fatalf("get wallet balance: %v", err)
	}
	return balance
}

func GetPaidAmount(t *testing.T, db *sql.DB, studentID, termID int64) decimal.Decimal {
	t.Helper()

	var paid decimal.Decimal
	err := db.QueryRow(
		`SELECT paid_amt FROM campus.charge WHERE student_id = $1 AND term_id = $2`,
		studentID, termID,
	).Scan(&paid)
	if err != nil {
		t.Fatalf("get paid amount: %v", err)
	}
	return paid
}

func CountAllReceipts(t *testing.T, db *sql.DB) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM campus.receipt`).Scan(&n); err != nil {
		t.Fatalf("count receipts: %v", err)
	}
	return n
}

func CountAudits(t *testing.T, db *sql.DB, studentID, offeringID int64) int {
	t.Helper()

	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM campus.mark_audit WHERE student_id = $1 AND offering_id = $2`,
		studentID, offeringID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("count audits: %v", err)
	}
	return n
}

func GetGrade(t *testing.T, db *sql.DB, studentID, offeringID int64) *string {
	t.Helper()

	var grade sql.NullString
	err := db.QueryRow(
		`SELECT grade FROM campus.enrol WHERE student_id = $1 AND offering_id = $2`,
		studentID, offeringID,
	).Scan(&grade)
	if err != nil {
		t.Fatalf("get grade: %v", err)
	}
	if !grade.Valid {
		return nil
	}
	return &grade.String
}

// Campus is a minimal seeded world: one term, one student with a wallet and
// a charge, and the company wallet.
type Campus struct {
	TermID          int64
	TermCode        string
	StudentID       int64
	StudentWalletID int64
	CompanyWalletID int64
}

func SeedCampus(t *testing.T, db *sql.DB, studentBalance, due string) Campus {
	t.Helper()

	c := Campus{TermCode: "2025FA", StudentID: 1}
	c.TermID = SeedTerm(t, db, c.TermCode)
	SeedStudent(t, db, c.StudentID)
	SeedCharge(t, db, c.StudentID, c.TermID, due, "0")
	c.StudentWalletID = SeedStudentWallet(t, db, c.StudentID, studentBalance)
	c.CompanyWalletID = SeedCompanyWallet(t, db, "0")
	return c
}
