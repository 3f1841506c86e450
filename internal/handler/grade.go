package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/josh-kwaku/campus-ledger/internal/logging"
	"github.com/josh-kwaku/campus-ledger/internal/service/txn"
)

type gradeService interface {
	RunGradePost(ctx context.Context, req txn.GradePostRequest) (*txn.GradePostResult, error)
}

type GradeHandler struct {
	grades gradeService
}

func NewGradeHandler(grades gradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

type postGradeRequest struct {
	StudentID  int64  `json:"student_id"`
	OfferingID int64  `json:"offering_id"`
	TutorID    int64  `json:"tutor_id"`
	Grade      string `json:"grade"`
}

type postGradeResponse struct {
	Message    string    `json:"message"`
	AuditID    int64     `json:"audit_id"`
	StudentID  int64     `json:"student_id"`
	OfferingID int64     `json:"offering_id"`
	OldGrade   *string   `json:"old_grade"`
	NewGrade   string    `json:"new_grade"`
	ByTutor    int64     `json:"by_tutor"`
	PostedAt   time.Time `json:"posted_at"`
	DurationMS int64     `json:"duration_ms"`
}

func (h *GradeHandler) Post(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	start := time.Now()

	var req postGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	res, err := h.grades.RunGradePost(r.Context(), txn.GradePostRequest{
		StudentID:  req.StudentID,
		OfferingID: req.OfferingID,
		TutorID:    req.TutorID,
		Grade:      req.Grade,
	})
	if err != nil {
		log.Warn("grade post failed", "student_id", req.StudentID, "offering_id", req.OfferingID, "error", err)
		RespondDomainError(w, err)
		return
	}

	elapsed := time.Since(start)
	a := res.Audit
	RespondSuccess(w, http.StatusOK, postGradeResponse{
		Message:    fmt.Sprintf("Grade updated to %s in %d ms.", a.NewGrade, elapsed.Milliseconds()),
		AuditID:    a.ID,
		StudentID:  a.StudentID,
		OfferingID: a.OfferingID,
		OldGrade:   a.OldGrade,
		NewGrade:   a.NewGrade,
		ByTutor:    a.ByTutor,
		PostedAt:   a.CreatedAt,
		DurationMS: elapsed.Milliseconds(),
	})
}
