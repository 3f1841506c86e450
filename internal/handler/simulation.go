package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/josh-kwaku/campus-ledger/internal/logging"
	"github.com/josh-kwaku/campus-ledger/internal/service/simulation"
)

type batchRunner interface {
	RunBatch(ctx context.Context, n int) (*simulation.BatchResult, error)
}

type SimulationHandler struct {
	batches      batchRunner
	defaultCount int
}

func NewSimulationHandler(batches batchRunner, defaultCount int) *SimulationHandler {
	return &SimulationHandler{batches: batches, defaultCount: defaultCount}
}

type simulationResponse struct {
	Message           string `json:"message"`
	PaymentsRequested int    `json:"payments_requested"`
	PaymentsAttempted int    `json:"payments_attempted"`
	PaymentsCommitted int    `json:"payments_committed"`
	PaymentsFailed    int    `json:"payments_failed"`
	Interrupted       bool   `json:"interrupted,omitempty"`
	DurationMS        int64  `json:"duration_ms"`
}

func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	start := time.Now()

	count := h.defaultCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			RespondValidationError(w, []FieldError{{Field: "count", Message: "must be an integer"}})
			return
		}
		count = n
	}

	res, err := h.batches.RunBatch(r.Context(), count)
	if err != nil {
		log.Error("simulation failed", "count", count, "error", err)
		RespondDomainError(w, err)
		return
	}

	elapsed := time.Since(start)
	RespondSuccess(w, http.StatusOK, simulationResponse{
		Message:           fmt.Sprintf("Simulation complete: %d payments in %d ms.", res.Attempted(), elapsed.Milliseconds()),
		PaymentsRequested: res.Requested,
		PaymentsAttempted: res.Attempted(),
		PaymentsCommitted: res.Committed,
		PaymentsFailed:    res.Attempted() - res.Committed,
		Interrupted:       res.Interrupted,
		DurationMS:        elapsed.Milliseconds(),
	})
}
