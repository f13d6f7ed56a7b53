package domain

import (
	"context"
	"time"
)

type Education struct {
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

type WorkHistory struct {
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description"`
}

// ResumeFile records where an uploaded resume landed. The bytes live on
// disk under the upload directory; only filename and URL are persisted.
type ResumeFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type Candidate struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id" validate:"required"`
	FullName    string        `json:"full_name" validate:"required,max=100"`
	Email       string        `json:"email" validate:"required,email"`
	Phone       string        `json:"phone,omitempty" validate:"valid_phone"`
	Skills      []string      `json:"skills"`
	Education   []Education   `json:"education"`
	WorkHistory []WorkHistory `json:"work_history"`
	ResumeText  string        `json:"resume_text,omitempty"`
	ResumeFile  *ResumeFile   `json:"resume_file,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// CandidateUpdate carries a partial profile update. Nil fields are left
// untouched; non-nil slices replace the stored value wholesale.
type CandidateUpdate struct {
	FullName    *string
	Email       *string
	Phone       *string
	Skills      []string
	Education   []Education
	WorkHistory []WorkHistory
	ResumeText  *string
	ResumeFile  *ResumeFile
}

// CandidateSearchQuery is the public candidate search request. SkillsAll
// requires every listed skill to be present on a match.
type CandidateSearchQuery struct {
	Search    string
	SkillsAll []string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	GetByUserID(ctx context.Context, userID string) (*Candidate, error)
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q CandidateSearchQuery) ([]Candidate, int64, error)
}

type CandidateUsecase interface {
	CreateProfile(ctx context.Context, userID string, c *Candidate) error
	GetProfile(ctx context.Context, id string) (*Candidate, error)
	UpdateProfile(ctx context.Context, id, callerID string, upd CandidateUpdate) (*Candidate, error)
	DeleteProfile(ctx context.Context, id, callerID string) error
	Search(ctx context.Context, q CandidateSearchQuery) ([]Candidate, int64, *Pagination, error)
}
