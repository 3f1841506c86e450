package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

type scanner interface {
	Scan(dest ...any) error
}

// mustAffectOne turns a zero-row write into notFound.
func mustAffectOne(res sql.Result, op string, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	return nil
}

func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
