package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/google/uuid"
)

type jobUsecase struct {
	jobRepo      domain.JobRepository
	defaultLimit int
	listLimit    int
}

func NewJobUsecase(jobRepo domain.JobRepository, defaultLimit, listLimit int) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:      jobRepo,
		defaultLimit: defaultLimit,
		listLimit:    listLimit,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, employerID string, job *domain.Job) error {
	if job.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return apperror.BadRequest("Salary minimum cannot be greater than maximum")
	}

	job.ID = uuid.NewString()
	job.EmployerID = employerID
	job.PostedAt = time.Now()
	job.IsActive = true

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id string) (*domain.Job, error) {
	if uuid.Validate(id) != nil {
		return nil, apperror.BadRequest("Invalid job id")
	}
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, q domain.JobListQuery) ([]domain.Job, int64, *domain.Pagination, error) {
	if err := domain.ValidateJobSort(q.SortBy); err != nil {
		return nil, 0, nil, apperror.BadRequest(err.Error())
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = u.defaultLimit
	}

	jobs, total, err := u.jobRepo.Fetch(ctx, q)
	if err != nil {
		return nil, 0, nil, apperror.Internal(err)
	}

	return jobs, total, domain.BuildPagination(q.Page, q.Limit, total), nil
}

func (u *jobUsecase) ListJobsByEmployer(ctx context.Context, employerID string, page, limit int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = u.listLimit
	}
	offset := (page - 1) * limit

	jobs, total, err := u.jobRepo.FetchByEmployer(ctx, employerID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, callerID, id string, upd domain.JobUpdate) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.EmployerID != callerID {
		return nil, apperror.Forbidden("You can only modify your own job postings")
	}

	applyJobUpdate(job, upd)

	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, apperror.BadRequest("Salary minimum cannot be greater than maximum")
	}

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, callerID, id string) error {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	if job.EmployerID != callerID {
		return apperror.Forbidden("You can only delete your own job postings")
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// applyJobUpdate merges the provided fields onto the stored job. Slices
// replace the stored value wholesale.
func applyJobUpdate(job *domain.Job, upd domain.JobUpdate) {
	if upd.Title != nil {
		job.Title = *upd.Title
	}
	if upd.Company != nil {
		job.Company = *upd.Company
	}
	if upd.Location != nil {
		job.Location = *upd.Location
	}
	if upd.Description != nil {
		job.Description = *upd.Description
	}
	if upd.Requirements != nil {
		job.Requirements = upd.Requirements
	}
	if upd.SalaryMin != nil {
		job.SalaryMin = upd.SalaryMin
	}
	if upd.SalaryMax != nil {
		job.SalaryMax = upd.SalaryMax
	}
	if upd.Deadline != nil {
		job.Deadline = upd.Deadline
	}
	if upd.IsActive != nil {
		job.IsActive = *upd.IsActive
	}
	if upd.Industry != nil {
		job.Industry = *upd.Industry
	}
	if upd.Skills != nil {
		job.Skills = upd.Skills
	}
}
