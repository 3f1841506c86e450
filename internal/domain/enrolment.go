package domain

import "time"

type EnrolmentStatus string

const (
	EnrolmentStatusEnrolled  EnrolmentStatus = "ENROLLED"
	EnrolmentStatusDropped   EnrolmentStatus = "DROPPED"
	EnrolmentStatusCompleted EnrolmentStatus = "COMPLETED"
)

type Enrolment struct {
	StudentID  int64
	OfferingID int64
	Grade      *string
	Status     EnrolmentStatus
}

// GradeRecord is the read-side view of an enrolment with its offering and term.
type GradeRecord struct {
	StudentID  int64
	OfferingID int64
	UnitCode   string
	TermCode   string
	Grade      *string
	Status     EnrolmentStatus
}

type MarkAudit struct {
	ID         int64
	StudentID  int64
	OfferingID int64
	OldGrade   *string
	NewGrade   string
	ByTutor    int64
	CreatedAt  time.Time
}
