package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
)

type Job struct {
	ID           string     `json:"id"`
	EmployerID   string     `json:"employer_id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	SalaryMin    *float64   `json:"salary_min,omitempty"`
	SalaryMax    *float64   `json:"salary_max,omitempty"`
	PostedAt     time.Time  `json:"posted_at"`
	Deadline     *time.Time `json:"application_deadline,omitempty"`
	IsActive     bool       `json:"is_active"`
	Industry     string     `json:"industry"`
	Skills       []string   `json:"skills"`
}

// JobUpdate carries a partial posting update. Nil fields are left
// untouched; non-nil slices replace the stored value wholesale.
type JobUpdate struct {
	Title        *string
	Company      *string
	Location     *string
	Description  *string
	Requirements []string
	SalaryMin    *float64
	SalaryMax    *float64
	Deadline     *time.Time
	IsActive     *bool
	Industry     *string
	Skills       []string
}

// FilterOp is a comparison operator accepted in list query filters.
type FilterOp string

const (
	FilterOpEq  FilterOp = "eq"
	FilterOpGt  FilterOp = "gt"
	FilterOpGte FilterOp = "gte"
	FilterOpLt  FilterOp = "lt"
	FilterOpLte FilterOp = "lte"
	FilterOpIn  FilterOp = "in"
)

// FilterExpr is a single validated {field, operator, value} constraint.
// Values for FilterOpIn are comma separated.
type FilterExpr struct {
	Field string
	Op    FilterOp
	Value string
}

// JobListQuery carries the full listing request after validation.
// When Search is non-empty the equality filters are ignored and the
// repository runs a text-index query with its own count.
type JobListQuery struct {
	Filters   []FilterExpr
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// PageRef points at an adjacent page in a paginated listing.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination holds next/prev references computed from index arithmetic.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Fetch(ctx context.Context, q JobListQuery) ([]Job, int64, error)
	FetchByEmployer(ctx context.Context, employerID string, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id string) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, employerID string, job *Job) error
	GetJobDetails(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, q JobListQuery) ([]Job, int64, *Pagination, error)
	ListJobsByEmployer(ctx context.Context, employerID string, page, limit int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, callerID, id string, upd JobUpdate) (*Job, error)
	DeleteJob(ctx context.Context, callerID, id string) error
}
