package txn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/josh-kwaku/campus-ledger/internal/logging"
)

type State string

const (
	StateStarted          State = "STARTED"
	StateLocksAcquired    State = "LOCKS_ACQUIRED"
	StateMutationsApplied State = "MUTATIONS_APPLIED"
	StateCommitted        State = "COMMITTED"
	StateRolledBack       State = "ROLLED_BACK"
)

type lockStage int

const (
	stageNone lockStage = iota
	stageTerm
	stageCharge
	stageWallet
	stageEnrol
)

func (s lockStage) String() string {
	switch s {
	case stageTerm:
		return "term"
	case stageCharge:
		return "charge"
	case stageWallet:
		return "wallet"
	case stageEnrol:
		return "enrol"
	default:
		return "none"
	}
}

var errLockOrder = errors.New("lock order violated")

// unit is one transaction plus the bookkeeping that keeps its lock
// acquisition monotonic.
type unit struct {
	op      string
	tx      *sql.Tx
	state   State
	stage   lockStage
	log     *slog.Logger
	started time.Time
}

func (c *Coordinator) begin(ctx context.Context, op string) (*unit, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}

	u := &unit{
		op:      op,
		tx:      tx,
		state:   StateStarted,
		log:     logging.FromContext(ctx).With("unit", op),
		started: time.Now(),
	}

	if c.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", lockTimeoutMillis(c.lockTimeout))
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			u.rollback()
			return nil, fmt.Errorf("begin: set lock timeout: %w", err)
		}
	}

	u.log.Debug("unit state", "state", u.state)
	return u, nil
}

// lockTimeoutMillis rounds d up to whole milliseconds. Postgres reads 0ms as
// no timeout, so a positive d never rounds down to it.
func lockTimeoutMillis(d time.Duration) int64 {
	return int64((d + time.Millisecond - 1) / time.Millisecond)
}

// acquire moves the unit to stage. Repeating the current stage is allowed;
// stepping back to an earlier one is not.
func (u *unit) acquire(stage lockStage) error {
	if stage < u.stage {
		return fmt.Errorf("acquire %s after %s: %w", stage, u.stage, errLockOrder)
	}
	u.stage = stage
	return nil
}

func (u *unit) transition(s State) {
	u.state = s
	u.log.Debug("unit state", "state", s)
}

func (u *unit) commit() error {
	if err := u.tx.Commit(); err != nil {
		u.transition(StateRolledBack)
		return fmt.Errorf("commit: %w", err)
	}
	u.transition(StateCommitted)
	return nil
}

func (u *unit) rollback() {
	if u.state == StateCommitted || u.state == StateRolledBack {
		return
	}
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		u.log.Error("rollback failed", "error", err)
	}
	u.transition(StateRolledBack)
}

// inUnit runs fn inside a fresh unit of work. The unit ignores cancellation
// of ctx once started and always ends in COMMITTED or ROLLED_BACK.
func (c *Coordinator) inUnit(ctx context.Context, op string, fn func(ctx context.Context, u *unit) error) (State, error) {
	ctx = context.WithoutCancel(ctx)

	u, err := c.begin(ctx, op)
	if err != nil {
		return StateRolledBack, classify(err)
	}

	if err := fn(ctx, u); err != nil {
		u.rollback()
		u.log.Warn("unit rolled back", "error", err, "elapsed", time.Since(u.started))
		return u.state, classify(err)
	}

	if err := u.commit(); err != nil {
		u.log.Warn("unit commit failed", "error", err)
		return u.state, classify(err)
	}
	return u.state, nil
}
