package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/google/uuid"
)

type applicationUsecase struct {
	appRepo       domain.ApplicationRepository
	jobRepo       domain.JobRepository
	candidateRepo domain.CandidateRepository
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
	}
}

// Apply creates an application for the caller's candidate profile against
// an active job. The unique (job, candidate) index backs the duplicate
// check, so two racing requests cannot both succeed.
func (uc *applicationUsecase) Apply(ctx context.Context, candidateUserID, jobID, coverLetter string) (*domain.Application, error) {
	candidate, err := uc.candidateRepo.GetByUserID(ctx, candidateUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate profile not found for the user")
		}
		return nil, apperror.Internal(err)
	}

	if uuid.Validate(jobID) != nil {
		return nil, apperror.BadRequest("Invalid or missing jobId")
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if !job.IsActive {
		return nil, apperror.BadRequest("Cannot apply to an inactive job")
	}

	app := &domain.Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		CandidateID: candidate.ID,
		AppliedAt:   time.Now(),
		Status:      domain.StatusApplied,
		CoverLetter: coverLetter,
	}

	if err := uc.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	return app, nil
}

func (uc *applicationUsecase) ListMine(ctx context.Context, candidateUserID string) ([]domain.ApplicationDetail, error) {
	candidate, err := uc.candidateRepo.GetByUserID(ctx, candidateUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate profile not found for the user")
		}
		return nil, apperror.Internal(err)
	}

	details, err := uc.appRepo.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return details, nil
}

func (uc *applicationUsecase) ListForEmployer(ctx context.Context, employerUserID string) ([]domain.ApplicationDetail, error) {
	details, err := uc.appRepo.ListByEmployer(ctx, employerUserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return details, nil
}

// GetByID enforces owner-scoped retrieval: the caller must be the
// application's candidate or the employer owning the referenced job.
func (uc *applicationUsecase) GetByID(ctx context.Context, callerID, callerRole, id string) (*domain.ApplicationDetail, error) {
	detail, err := uc.appRepo.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	// A broken job reference is a 404 on single-item retrieval.
	if detail.Job == nil {
		return nil, apperror.NotFound("Job not found")
	}

	allowed, err := uc.canAccess(ctx, callerID, callerRole, &detail.Application)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.Forbidden("You do not have access to this application")
	}
	return detail, nil
}

func (uc *applicationUsecase) UpdateStatus(ctx context.Context, employerUserID, id, status string) (*domain.ApplicationDetail, error) {
	if !domain.ValidStatus(status) {
		return nil, apperror.BadRequest("Invalid status value")
	}

	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.EmployerID != employerUserID {
		return nil, apperror.Forbidden("You can only update applications for your own jobs")
	}

	if err := uc.appRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	app.Status = status

	// Respond with the joined summaries, tolerating join failure by
	// falling back to the bare record.
	detail, err := uc.appRepo.GetDetailByID(ctx, id)
	if err != nil {
		return &domain.ApplicationDetail{Application: *app}, nil
	}
	return detail, nil
}

func (uc *applicationUsecase) Delete(ctx context.Context, callerID, callerRole, id string) error {
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}

	allowed, err := uc.canAccess(ctx, callerID, callerRole, app)
	if err != nil {
		return err
	}
	if !allowed {
		return apperror.Forbidden("You do not have access to this application")
	}

	if err := uc.appRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// canAccess reports whether the caller owns the application from either
// side: as the candidate who filed it, or as the employer owning the job
// it targets. Admins pass unconditionally.
func (uc *applicationUsecase) canAccess(ctx context.Context, callerID, callerRole string, app *domain.Application) (bool, error) {
	switch callerRole {
	case domain.RoleAdmin:
		return true, nil
	case domain.RoleCandidate:
		candidate, err := uc.candidateRepo.GetByUserID(ctx, callerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			return false, apperror.Internal(err)
		}
		return candidate.ID == app.CandidateID, nil
	case domain.RoleEmployer:
		job, err := uc.jobRepo.GetByID(ctx, app.JobID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			return false, apperror.Internal(err)
		}
		return job.EmployerID == callerID, nil
	default:
		return false, nil
	}
}
