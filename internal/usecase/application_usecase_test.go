package usecase_test

import (
	"context"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestApply(t *testing.T) {
	jobID := uuid.NewString()
	candidate := &domain.Candidate{ID: "cand1", UserID: "user1"}

	t.Run("missing candidate profile is a 404", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		candRepo.On("GetByUserID", mock.Anything, "user1").Return(nil, domain.ErrNotFound)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.Apply(context.Background(), "user1", jobID, "")
		assert.Error(t, err)
		assert.Equal(t, 404, appErrStatus(t, err))
	})

	t.Run("malformed job id is a 400", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		candRepo.On("GetByUserID", mock.Anything, "user1").Return(candidate, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.Apply(context.Background(), "user1", "not-a-uuid", "")
		assert.Error(t, err)
		assert.Equal(t, 400, appErrStatus(t, err))
		jobRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("inactive job is a 400", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		candRepo.On("GetByUserID", mock.Anything, "user1").Return(candidate, nil)
		jobRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, IsActive: false}, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.Apply(context.Background(), "user1", jobID, "")
		assert.Error(t, err)
		assert.Equal(t, 400, appErrStatus(t, err))
		appRepo.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate application is a 409", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		candRepo.On("GetByUserID", mock.Anything, "user1").Return(candidate, nil)
		jobRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, IsActive: true}, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.Apply(context.Background(), "user1", jobID, "")
		assert.Error(t, err)
		assert.Equal(t, 409, appErrStatus(t, err))
	})

	t.Run("new application starts as Applied, cover letter optional", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		candRepo.On("GetByUserID", mock.Anything, "user1").Return(candidate, nil)
		jobRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, IsActive: true}, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		app, err := uc.Apply(context.Background(), "user1", jobID, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApplied, app.Status)
		assert.Equal(t, "cand1", app.CandidateID)
		assert.Empty(t, app.CoverLetter)
	})
}

func TestUpdateStatus(t *testing.T) {
	appID := uuid.NewString()
	jobID := uuid.NewString()
	app := &domain.Application{ID: appID, JobID: jobID, CandidateID: "cand1", Status: domain.StatusApplied}

	t.Run("out-of-enum status is a 400", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.UpdateStatus(context.Background(), "emp1", appID, "Ghosted")
		assert.Error(t, err)
		assert.Equal(t, 400, appErrStatus(t, err))
		appRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("employer who does not own the job gets 403", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		appRepo.On("GetByID", mock.Anything, appID).Return(app, nil)
		jobRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, EmployerID: "emp1"}, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.UpdateStatus(context.Background(), "emp2", appID, domain.StatusHired)
		assert.Error(t, err)
		assert.Equal(t, 403, appErrStatus(t, err))
		appRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("any valid status may overwrite any other", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		hired := &domain.Application{ID: appID, JobID: jobID, CandidateID: "cand1", Status: domain.StatusHired}
		appRepo.On("GetByID", mock.Anything, appID).Return(hired, nil)
		jobRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, EmployerID: "emp1"}, nil)
		appRepo.On("UpdateStatus", mock.Anything, appID, domain.StatusRejected).Return(nil)
		appRepo.On("GetDetailByID", mock.Anything, appID).Return(&domain.ApplicationDetail{
			Application: domain.Application{ID: appID, Status: domain.StatusRejected},
			Job:         &domain.JobSummary{ID: jobID},
		}, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		detail, err := uc.UpdateStatus(context.Background(), "emp1", appID, domain.StatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, detail.Application.Status)
	})

	t.Run("falls back to the bare record when the join fetch fails", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		appRepo.On("GetByID", mock.Anything, appID).Return(app, nil)
		jobRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, EmployerID: "emp1"}, nil)
		appRepo.On("UpdateStatus", mock.Anything, appID, domain.StatusInterview).Return(nil)
		appRepo.On("GetDetailByID", mock.Anything, appID).Return(nil, domain.ErrNotFound)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		detail, err := uc.UpdateStatus(context.Background(), "emp1", appID, domain.StatusInterview)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusInterview, detail.Application.Status)
		assert.Nil(t, detail.Job)
	})
}

func TestApplicationAccess(t *testing.T) {
	appID := uuid.NewString()
	jobID := uuid.NewString()
	detail := &domain.ApplicationDetail{
		Application: domain.Application{ID: appID, JobID: jobID, CandidateID: "cand1"},
		Job:         &domain.JobSummary{ID: jobID},
	}

	t.Run("candidate can read their own application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		appRepo.On("GetDetailByID", mock.Anything, appID).Return(detail, nil)
		candRepo.On("GetByUserID", mock.Anything, "user1").Return(&domain.Candidate{ID: "cand1", UserID: "user1"}, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		got, err := uc.GetByID(context.Background(), "user1", domain.RoleCandidate, appID)
		assert.NoError(t, err)
		assert.Equal(t, appID, got.Application.ID)
	})

	t.Run("other candidate gets 403", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		appRepo.On("GetDetailByID", mock.Anything, appID).Return(detail, nil)
		candRepo.On("GetByUserID", mock.Anything, "user2").Return(&domain.Candidate{ID: "cand2", UserID: "user2"}, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.GetByID(context.Background(), "user2", domain.RoleCandidate, appID)
		assert.Error(t, err)
		assert.Equal(t, 403, appErrStatus(t, err))
	})

	t.Run("employer access follows job ownership", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		appRepo.On("GetDetailByID", mock.Anything, appID).Return(detail, nil)
		jobRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, EmployerID: "emp1"}, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.GetByID(context.Background(), "emp1", domain.RoleEmployer, appID)
		assert.NoError(t, err)

		_, err = uc.GetByID(context.Background(), "emp2", domain.RoleEmployer, appID)
		assert.Error(t, err)
		assert.Equal(t, 403, appErrStatus(t, err))
	})

	t.Run("admin passes unconditionally", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		appRepo.On("GetDetailByID", mock.Anything, appID).Return(detail, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.GetByID(context.Background(), "whoever", domain.RoleAdmin, appID)
		assert.NoError(t, err)
	})

	t.Run("broken job reference is a 404 on single retrieval", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		orphan := &domain.ApplicationDetail{Application: domain.Application{ID: appID, JobID: jobID}}
		appRepo.On("GetDetailByID", mock.Anything, appID).Return(orphan, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		_, err := uc.GetByID(context.Background(), "whoever", domain.RoleAdmin, appID)
		assert.Error(t, err)
		assert.Equal(t, 404, appErrStatus(t, err))
	})
}

func TestDeleteApplication(t *testing.T) {
	appID := uuid.NewString()
	jobID := uuid.NewString()
	app := &domain.Application{ID: appID, JobID: jobID, CandidateID: "cand1"}

	t.Run("candidate deletes their own", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		appRepo.On("GetByID", mock.Anything, appID).Return(app, nil)
		candRepo.On("GetByUserID", mock.Anything, "user1").Return(&domain.Candidate{ID: "cand1", UserID: "user1"}, nil)
		appRepo.On("Delete", mock.Anything, appID).Return(nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		assert.NoError(t, uc.Delete(context.Background(), "user1", domain.RoleCandidate, appID))
		appRepo.AssertExpectations(t)
	})

	t.Run("employer without the job gets 403", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		candRepo := new(MockCandidateRepo)
		appRepo.On("GetByID", mock.Anything, appID).Return(app, nil)
		jobRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, EmployerID: "emp1"}, nil)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo)

		err := uc.Delete(context.Background(), "emp2", domain.RoleEmployer, appID)
		assert.Error(t, err)
		assert.Equal(t, 403, appErrStatus(t, err))
		appRepo.AssertNotCalled(t, "Delete")
	})
}
