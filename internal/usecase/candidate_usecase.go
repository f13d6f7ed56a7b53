package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ResumeStore is the slice of the file store the usecase needs: removing
// an attachment when the profile (or the file) goes away.
type ResumeStore interface {
	Remove(filename string) error
}

type candidateUsecase struct {
	repo      domain.CandidateRepository
	files     ResumeStore
	validate  *validator.Validate
	listLimit int
}

func NewCandidateUsecase(repo domain.CandidateRepository, files ResumeStore, validate *validator.Validate, listLimit int) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:      repo,
		files:     files,
		validate:  validate,
		listLimit: listLimit,
	}
}

func (u *candidateUsecase) CreateProfile(ctx context.Context, userID string, c *domain.Candidate) error {
	c.ID = uuid.NewString()
	c.UserID = userID
	c.CreatedAt = time.Now()

	if err := u.validate.Struct(c); err != nil {
		return apperror.BadRequest(err.Error())
	}

	// The unique index on user_id is authoritative; this just turns the
	// common case into a friendlier error before the write.
	if _, err := u.repo.GetByUserID(ctx, userID); err == nil {
		return apperror.Conflict("Candidate profile already exists for this user")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}

	if err := u.repo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict("Candidate profile already exists for this user")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *candidateUsecase) GetProfile(ctx context.Context, id string) (*domain.Candidate, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	return c, nil
}

// locate finds the profile to operate on: by the caller's ownership first,
// falling back to the path identifier.
func (u *candidateUsecase) locate(ctx context.Context, id, callerID string) (*domain.Candidate, error) {
	c, err := u.repo.GetByUserID(ctx, callerID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	c, err = u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	return c, nil
}

func (u *candidateUsecase) UpdateProfile(ctx context.Context, id, callerID string, upd domain.CandidateUpdate) (*domain.Candidate, error) {
	c, err := u.locate(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if c.UserID != callerID {
		return nil, apperror.Forbidden("You can only update your own profile")
	}

	previousFile := c.ResumeFile
	applyCandidateUpdate(c, upd)

	if err := u.validate.Struct(c); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if err := u.repo.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}

	// A replaced attachment leaves the old file orphaned on disk;
	// removal is best effort.
	if upd.ResumeFile != nil && previousFile != nil && previousFile.Filename != upd.ResumeFile.Filename {
		u.removeFile(previousFile.Filename)
	}

	return c, nil
}

func (u *candidateUsecase) DeleteProfile(ctx context.Context, id, callerID string) error {
	c, err := u.locate(ctx, id, callerID)
	if err != nil {
		return err
	}
	if c.UserID != callerID {
		return apperror.Forbidden("You can only delete your own profile")
	}

	if err := u.repo.Delete(ctx, c.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Candidate not found")
		}
		return apperror.Internal(err)
	}

	if c.ResumeFile != nil {
		u.removeFile(c.ResumeFile.Filename)
	}
	return nil
}

func (u *candidateUsecase) Search(ctx context.Context, q domain.CandidateSearchQuery) ([]domain.Candidate, int64, *domain.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = u.listLimit
	}

	candidates, total, err := u.repo.Search(ctx, q)
	if err != nil {
		return nil, 0, nil, apperror.Internal(err)
	}
	return candidates, total, domain.BuildPagination(q.Page, q.Limit, total), nil
}

// removeFile deletes a stored resume; failures are logged, never
// propagated to the caller.
func (u *candidateUsecase) removeFile(filename string) {
	if u.files == nil || filename == "" {
		return
	}
	if err := u.files.Remove(filename); err != nil && logger.Log != nil {
		logger.Log.Warn("failed to remove resume file", "filename", filename, "error", err)
	}
}

// applyCandidateUpdate merges provided fields; slices (skills, education,
// work history) are replaced wholesale, not merged element-wise.
func applyCandidateUpdate(c *domain.Candidate, upd domain.CandidateUpdate) {
	if upd.FullName != nil {
		c.FullName = *upd.FullName
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Skills != nil {
		c.Skills = upd.Skills
	}
	if upd.Education != nil {
		c.Education = upd.Education
	}
	if upd.WorkHistory != nil {
		c.WorkHistory = upd.WorkHistory
	}
	if upd.ResumeText != nil {
		c.ResumeText = *upd.ResumeText
	}
	if upd.ResumeFile != nil {
		c.ResumeFile = upd.ResumeFile
	}
}
