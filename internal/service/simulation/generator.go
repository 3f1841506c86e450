// Package simulation drives batches of synthetic tuition payments through
// the transaction coordinator.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
	"github.com/josh-kwaku/campus-ledger/internal/metrics"
	"github.com/josh-kwaku/campus-ledger/internal/service/txn"
)

var simulatedKinds = []domain.PaymentKind{domain.PaymentKindCard, domain.PaymentKindACH}

type paymentRunner interface {
	RunPayment(ctx context.Context, req txn.PaymentRequest) (*txn.PaymentResult, error)
	Ping(ctx context.Context) error
}

type Config struct {
	TermCode     string
	Population   int
	MinAmount    int64
	AmountSpread int64
	MaxCount     int
	// RatePerSec caps payments per second. Zero means unpaced.
	RatePerSec float64
}

// Outcome is the result of one synthetic payment. Err is nil when the
// payment committed.
type Outcome struct {
	Request   txn.PaymentRequest
	ReceiptID int64
	Err       error
}

func (o Outcome) Committed() bool { return o.Err == nil }

type BatchResult struct {
	Requested int
	Committed int
	Outcomes  []Outcome
	// Interrupted is set when ctx ended before every payment was attempted.
	Interrupted bool
}

func (r *BatchResult) Attempted() int { return len(r.Outcomes) }

type Generator struct {
	runner  paymentRunner
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Recorder
	limiter *rate.Limiter

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Generator)

// WithRand replaces the generator's random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(g *Generator) { g.metrics = r }
}

func NewGenerator(runner paymentRunner, cfg Config, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		runner: runner,
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	if cfg.RatePerSec > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RunBatch attempts n independent payments. A failed payment is logged and
// recorded in the result; it never stops the batch. The only errors returned
// are for a bad n or an unreachable store.
func (g *Generator) RunBatch(ctx context.Context, n int) (*BatchResult, error) {
	if n < 1 {
		return nil, fmt.Errorf("RunBatch: %w", domain.NewValidationError(domain.FieldViolation{Field: "count", Rule: "min"}))
	}
	if g.cfg.MaxCount > 0 && n > g.cfg.MaxCount {
		return nil, fmt.Errorf("RunBatch: %w", domain.NewValidationError(domain.FieldViolation{Field: "count", Rule: "max"}))
	}
	if err := g.runner.Ping(ctx); err != nil {
		return nil, fmt.Errorf("RunBatch: %w", err)
	}

	g.metrics.BatchStarted()
	result := &BatchResult{Requested: n, Outcomes: make([]Outcome, 0, n)}

	for i := range n {
		if err := g.wait(ctx); err != nil {
			result.Interrupted = true
			g.logger.Warn("simulation batch interrupted", "attempted", i, "requested", n, "error", err)
			break
		}

		req := g.nextRequest()
		res, err := g.runner.RunPayment(ctx, req)
		out := Outcome{Request: req, Err: err}
		if err != nil {
			g.logger.Warn("simulated payment failed",
				"iteration", i,
				"student_id", req.StudentID,
				"kind_code", req.KindCode,
				"amount", req.Amount.String(),
				"error", err,
			)
		} else {
			out.ReceiptID = res.Receipt.ID
			result.Committed++
		}
		g.metrics.BatchIteration(out.Committed())
		result.Outcomes = append(result.Outcomes, out)
	}

	g.logger.Info("simulation batch finished",
		"requested", n,
		"attempted", result.Attempted(),
		"committed", result.Committed,
	)
	return result, nil
}

func (g *Generator) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(ctx)
}

func (g *Generator) nextRequest() txn.PaymentRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	return txn.PaymentRequest{
		StudentID: int64(g.rng.IntN(g.cfg.Population)) + 1,
		TermCode:  g.cfg.TermCode,
		KindCode:  simulatedKinds[g.rng.IntN(len(simulatedKinds))],
		Amount:    decimal.NewFromInt(g.cfg.MinAmount + g.rng.Int64N(g.cfg.AmountSpread)),
	}
}
