package txn

import (
	"context"
	"fmt"
	"time"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
	"github.com/josh-kwaku/campus-ledger/internal/logging"
)

type GradePostRequest struct {
	StudentID  int64  `json:"student_id" validate:"required,gt=0"`
	OfferingID int64  `json:"offering_id" validate:"required,gt=0"`
	TutorID    int64  `json:"tutor_id" validate:"required,gt=0"`
	Grade      string `json:"grade" validate:"required,max=4"`
}

type GradePostResult struct {
	Audit domain.MarkAudit
	State State
}

// RunGradePost replaces the enrolment's grade and appends the matching audit
// row in one unit. The tutor id is recorded as given.
func (c *Coordinator) RunGradePost(ctx context.Context, req GradePostRequest) (*GradePostResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("RunGradePost: %w", err)
	}

	start := time.Now()

	var audit *domain.MarkAudit
	state, err := c.inUnit(ctx, "post_grade", func(ctx context.Context, u *unit) error {
		var err error
		audit, err = c.postGrade(ctx, u, req)
		return err
	})
	c.metrics.ObserveGradePost(outcome(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("RunGradePost: %w", err)
	}

	logging.FromContext(ctx).Info("grade posted",
		"audit_id", audit.ID,
		"student_id", req.StudentID,
		"offering_id", req.OfferingID,
		"by_tutor", req.TutorID,
	)
	return &GradePostResult{Audit: *audit, State: state}, nil
}

func (c *Coordinator) postGrade(ctx context.Context, u *unit, req GradePostRequest) (*domain.MarkAudit, error) {
	if err := u.acquire(stageEnrol); err != nil {
		return nil, fmt.Errorf("postGrade: %w", err)
	}
	enrolment, err := c.enrolments.GetForUpdate(ctx, u.tx, req.StudentID, req.OfferingID)
	if err != nil {
		return nil, fmt.Errorf("postGrade: %w", err)
	}
	u.transition(StateLocksAcquired)

	if err := c.enrolments.UpdateGrade(ctx, u.tx, req.StudentID, req.OfferingID, req.Grade); err != nil {
		return nil, fmt.Errorf("postGrade: %w", err)
	}

	audit := &domain.MarkAudit{
		StudentID:  req.StudentID,
		OfferingID: req.OfferingID,
		OldGrade:   enrolment.Grade,
		NewGrade:   req.Grade,
		ByTutor:    req.TutorID,
	}
	if err := c.audits.Create(ctx, u.tx, audit); err != nil {
		return nil, fmt.Errorf("postGrade: create audit: %w", err)
	}
	u.transition(StateMutationsApplied)

	return audit, nil
}
