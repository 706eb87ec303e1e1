package model

import "time"

// SubmissionStatus represents the status of a form submission
type SubmissionStatus string

const (
	// SubmissionPending means the write has been sent and not yet answered
	SubmissionPending SubmissionStatus = "Pending"

	// SubmissionRejected means validation failed before any write
	SubmissionRejected SubmissionStatus = "Rejected"

	// SubmissionSaved means the write succeeded
	SubmissionSaved SubmissionStatus = "Saved"

	// SubmissionFailed means the write failed
	SubmissionFailed SubmissionStatus = "Failed"
)

// String returns the string representation of SubmissionStatus
func (s SubmissionStatus) String() string {
	return string(s)
}

// IsActive returns true while the submission is in flight
func (s SubmissionStatus) IsActive() bool {
	return s == SubmissionPending
}

// IsFinished returns true if the submission reached a terminal state
func (s SubmissionStatus) IsFinished() bool {
	return s == SubmissionRejected || s == SubmissionSaved || s == SubmissionFailed
}

// SubmissionKind names what a submission writes
type SubmissionKind string

const (
	SubmissionCreateCourse SubmissionKind = "create-course"
	SubmissionRenameCourse SubmissionKind = "rename-course"
	SubmissionCreateLesson SubmissionKind = "create-lesson"
	SubmissionUpdateLesson SubmissionKind = "update-lesson"
	SubmissionDeleteLesson SubmissionKind = "delete-lesson"
	SubmissionImport       SubmissionKind = "import-playlist"
)

// Submission tracks one write issued from a form
type Submission struct {
	ID         string
	Key        string // identifies the form instance, used to refuse duplicates
	Kind       SubmissionKind
	Status     SubmissionStatus
	EntityID   string // id of the created or edited entity once known
	FormSeq    uint64 // open form the submission came from, 0 when none
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetElapsed returns how long the submission took, or has taken so far
func (s *Submission) GetElapsed() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
