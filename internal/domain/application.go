package domain

import (
	"context"
	"time"
)

// Application status values. Any of these may overwrite any other via an
// employer status update; only membership in the set is enforced.
const (
	StatusApplied     = "Applied"
	StatusUnderReview = "Under Review"
	StatusInterview   = "Interview"
	StatusRejected    = "Rejected"
	StatusHired       = "Hired"
)

// ValidStatus reports whether s is one of the five application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusApplied, StatusUnderReview, StatusInterview, StatusRejected, StatusHired:
		return true
	}
	return false
}

type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	AppliedAt   time.Time `json:"applied_at"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"cover_letter,omitempty"`
}

// JobSummary and CandidateSummary are the joined projections attached to
// application listings.
type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

type CandidateSummary struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Skills   []string `json:"skills"`
}

// ApplicationDetail is an application with its joined job and candidate.
// Either join may be nil when the referenced record no longer resolves.
type ApplicationDetail struct {
	Application
	Job       *JobSummary       `json:"job,omitempty"`
	Candidate *CandidateSummary `json:"candidate,omitempty"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetDetailByID(ctx context.Context, id string) (*ApplicationDetail, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]ApplicationDetail, error)
	ListByEmployer(ctx context.Context, employerID string) ([]ApplicationDetail, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, candidateUserID, jobID, coverLetter string) (*Application, error)
	ListMine(ctx context.Context, candidateUserID string) ([]ApplicationDetail, error)
	ListForEmployer(ctx context.Context, employerUserID string) ([]ApplicationDetail, error)
	GetByID(ctx context.Context, callerID, callerRole, id string) (*ApplicationDetail, error)
	UpdateStatus(ctx context.Context, employerUserID, id, status string) (*ApplicationDetail, error)
	Delete(ctx context.Context, callerID, callerRole, id string) error
}
