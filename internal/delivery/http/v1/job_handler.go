package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Public routes - browsing needs no account
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// Protected routes - posting and managing jobs
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", middleware.RequireRoles(domain.RoleEmployer, domain.RoleAdmin), handler.Create)
		protectedJobs.PATCH("/:id", middleware.RequireRoles(domain.RoleEmployer, domain.RoleAdmin), handler.Update)
		protectedJobs.DELETE("/:id", middleware.RequireRoles(domain.RoleEmployer, domain.RoleAdmin), handler.Delete)
	}

	// Employer-specific job routes (only shows employer's own jobs)
	employers := protected.Group("/employers")
	{
		employers.GET("/jobs", middleware.RequireRoles(domain.RoleEmployer, domain.RoleAdmin), handler.ListByEmployer)
	}
}

type CreateJobRequest struct {
	Title        string     `json:"title" binding:"required"`
	Company      string     `json:"company" binding:"required"`
	Location     string     `json:"location"`
	Description  string     `json:"description" binding:"required"`
	Requirements []string   `json:"requirements"`
	SalaryMin    *float64   `json:"salary_min" binding:"omitempty,gt=0"`
	SalaryMax    *float64   `json:"salary_max" binding:"omitempty,gt=0"`
	Deadline     *time.Time `json:"application_deadline"`
	Industry     string     `json:"industry"`
	Skills       []string   `json:"skills"`
}

type UpdateJobRequest struct {
	Title        *string    `json:"title"`
	Company      *string    `json:"company"`
	Location     *string    `json:"location"`
	Description  *string    `json:"description"`
	Requirements []string   `json:"requirements"`
	SalaryMin    *float64   `json:"salary_min" binding:"omitempty,gt=0"`
	SalaryMax    *float64   `json:"salary_max" binding:"omitempty,gt=0"`
	Deadline     *time.Time `json:"application_deadline"`
	IsActive     *bool      `json:"is_active"`
	Industry     *string    `json:"industry"`
	Skills       []string   `json:"skills"`
}

// JobListResponse is the paginated job listing payload.
type JobListResponse struct {
	Count      int                `json:"count"`
	Total      int64              `json:"total"`
	Pagination *domain.Pagination `json:"pagination"`
	Data       []domain.Job       `json:"data"`
}

// List godoc
// @Summary      List jobs
// @Description  List jobs with filtering (field or field[op] query keys, op in gt|gte|lt|lte|in), text search, sorting, and pagination
// @Tags         jobs
// @Produce      json
// @Param        search     query     string  false  "Full-text search"
// @Param        sortBy     query     string  false  "Sort field"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  JobListResponse
// @Failure      400        {object}  response.ErrorBody
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filters, err := domain.ParseJobFilters(c.Request.URL.Query())
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	q := domain.JobListQuery{
		Filters:   filters,
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      page,
		Limit:     limit,
	}

	jobs, total, pagination, err := h.jobUC.ListJobs(c, q)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, JobListResponse{
		Count:      len(jobs),
		Total:      total,
		Pagination: pagination,
		Data:       jobs,
	})
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      400  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Create godoc
// @Summary      Create a job posting
// @Description  Create a new job posting (employer only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  domain.Job
// @Failure      400  {object}  response.ErrorBody
// @Failure      401  {object}  response.ErrorBody
// @Failure      403  {object}  response.ErrorBody
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	job := &domain.Job{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Deadline:     req.Deadline,
		Industry:     req.Industry,
		Skills:       req.Skills,
	}

	if err := h.jobUC.CreateJob(c, userID, job); err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusCreated, job)
}

// Update godoc
// @Summary      Update a job posting
// @Description  Partially update a posting; only the owning employer may update
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      UpdateJobRequest  true  "Fields to update"
// @Success      200  {object}  domain.Job
// @Failure      400  {object}  response.ErrorBody
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	upd := domain.JobUpdate{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Deadline:     req.Deadline,
		IsActive:     req.IsActive,
		Industry:     req.Industry,
		Skills:       req.Skills,
	}

	job, err := h.jobUC.UpdateJob(c, userID, c.Param("id"), upd)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, job)
}

// Delete godoc
// @Summary      Delete a job posting
// @Tags         jobs
// @Produce      json
// @Param        id   path  string  true  "Job ID"
// @Success      204  "deleted"
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.jobUC.DeleteJob(c, userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByEmployer godoc
// @Summary      List own job postings
// @Description  List the authenticated employer's postings
// @Tags         jobs
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  JobListResponse
// @Router       /employers/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListByEmployer(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	jobs, total, err := h.jobUC.ListJobsByEmployer(c, userID, page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"count": len(jobs),
		"total": total,
		"data":  jobs,
	})
}
