package txn

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
	"github.com/josh-kwaku/campus-ledger/internal/metrics"
)

const (
	pqLockNotAvailable     = pq.ErrorCode("55P03")
	pqForeignKeyViolation  = pq.ErrorCode("23503")
	markAuditTutorFKeyName = "mark_audit_by_tutor_fkey"
)

// classify leaves domain errors alone and folds everything else into
// ErrStorage, with lock timeouts reported as ErrLockTimeout. An audit row
// naming an unknown tutor is reported as ErrTutorNotFound.
func classify(err error) error {
	if err == nil || domain.IsDomainError(err) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pqLockNotAvailable:
			return fmt.Errorf("%w: %w", domain.ErrLockTimeout, err)
		case pqErr.Code == pqForeignKeyViolation && pqErr.Constraint == markAuditTutorFKeyName:
			return fmt.Errorf("%w: %w", domain.ErrTutorNotFound, err)
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCommitted
	case errors.Is(err, domain.ErrStorage):
		return metrics.OutcomeFailed
	default:
		return metrics.OutcomeRejected
	}
}
