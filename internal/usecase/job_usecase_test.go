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

func f64(v float64) *float64 { return &v }

func TestCreateJob(t *testing.T) {
	t.Run("requires a title", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		err := uc.CreateJob(context.Background(), "emp1", &domain.Job{})
		assert.Error(t, err)
		assert.Equal(t, 400, appErrStatus(t, err))
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects inverted salary range", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		job := &domain.Job{Title: "Engineer", SalaryMin: f64(120000), SalaryMax: f64(80000)}
		err := uc.CreateJob(context.Background(), "emp1", job)
		assert.Error(t, err)
		assert.Equal(t, 400, appErrStatus(t, err))
	})

	t.Run("stamps identity, posting time, and active flag", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		job := &domain.Job{Title: "Engineer", SalaryMin: f64(80000), SalaryMax: f64(120000)}
		err := uc.CreateJob(context.Background(), "emp1", job)
		assert.NoError(t, err)
		assert.NoError(t, uuid.Validate(job.ID))
		assert.Equal(t, "emp1", job.EmployerID)
		assert.True(t, job.IsActive)
		assert.False(t, job.PostedAt.IsZero())
	})
}

func TestGetJobDetails(t *testing.T) {
	t.Run("malformed id is a 400, not a store round trip", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		_, err := uc.GetJobDetails(context.Background(), "not-a-uuid")
		assert.Error(t, err)
		assert.Equal(t, 400, appErrStatus(t, err))
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("missing job is a 404", func(t *testing.T) {
		id := uuid.NewString()
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		_, err := uc.GetJobDetails(context.Background(), id)
		assert.Error(t, err)
		assert.Equal(t, 404, appErrStatus(t, err))
	})
}

func TestListJobs(t *testing.T) {
	t.Run("unknown sort field is a 400", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		_, _, _, err := uc.ListJobs(context.Background(), domain.JobListQuery{SortBy: "secret_column"})
		assert.Error(t, err)
		assert.Equal(t, 400, appErrStatus(t, err))
	})

	t.Run("defaults page and limit before fetching", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("Fetch", mock.Anything, mock.MatchedBy(func(q domain.JobListQuery) bool {
			return q.Page == 1 && q.Limit == 25
		})).Return([]domain.Job{}, int64(0), nil)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		_, _, _, err := uc.ListJobs(context.Background(), domain.JobListQuery{})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("pagination reflects position in the result set", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("Fetch", mock.Anything, mock.Anything).Return(make([]domain.Job, 10), int64(30), nil)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		_, total, pagination, err := uc.ListJobs(context.Background(), domain.JobListQuery{Page: 2, Limit: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(30), total)
		assert.NotNil(t, pagination.Next)
		assert.Equal(t, 3, pagination.Next.Page)
		assert.NotNil(t, pagination.Prev)
		assert.Equal(t, 1, pagination.Prev.Page)
	})
}

func TestUpdateJobOwnership(t *testing.T) {
	jobID := uuid.NewString()
	stored := &domain.Job{ID: jobID, EmployerID: "emp1", Title: "Engineer", IsActive: true}

	t.Run("non-owner gets 403", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, jobID).Return(stored, nil)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		_, err := uc.UpdateJob(context.Background(), "emp2", jobID, domain.JobUpdate{})
		assert.Error(t, err)
		assert.Equal(t, 403, appErrStatus(t, err))
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("merge rejects a salary range that becomes inverted", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{
			ID: jobID, EmployerID: "emp1", Title: "Engineer", SalaryMax: f64(100000),
		}, nil)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		_, err := uc.UpdateJob(context.Background(), "emp1", jobID, domain.JobUpdate{SalaryMin: f64(150000)})
		assert.Error(t, err)
		assert.Equal(t, 400, appErrStatus(t, err))
	})

	t.Run("nil fields leave stored values alone, slices replace wholesale", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{
			ID: jobID, EmployerID: "emp1", Title: "Engineer", Location: "Berlin",
			Skills: []string{"go", "sql"},
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		newTitle := "Senior Engineer"
		job, err := uc.UpdateJob(context.Background(), "emp1", jobID, domain.JobUpdate{
			Title:  &newTitle,
			Skills: []string{"go"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "Senior Engineer", job.Title)
		assert.Equal(t, "Berlin", job.Location)
		assert.Equal(t, []string{"go"}, job.Skills)
	})
}

func TestDeleteJobOwnership(t *testing.T) {
	jobID := uuid.NewString()

	t.Run("non-owner gets 403", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, EmployerID: "emp1"}, nil)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		err := uc.DeleteJob(context.Background(), "emp2", jobID)
		assert.Error(t, err)
		assert.Equal(t, 403, appErrStatus(t, err))
		mockRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("owner deletes", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		mockRepo.On("GetByID", mock.Anything, jobID).Return(&domain.Job{ID: jobID, EmployerID: "emp1"}, nil)
		mockRepo.On("Delete", mock.Anything, jobID).Return(nil)
		uc := usecase.NewJobUsecase(mockRepo, 25, 10)

		assert.NoError(t, uc.DeleteJob(context.Background(), "emp1", jobID))
		mockRepo.AssertExpectations(t)
	})
}
