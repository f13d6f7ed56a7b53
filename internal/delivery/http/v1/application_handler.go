package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/applications")
	{
		applications.POST("", middleware.RequireRoles(domain.RoleCandidate), handler.Apply)
		applications.GET("/my-applications", middleware.RequireRoles(domain.RoleCandidate), handler.ListMine)
		applications.GET("/employer", middleware.RequireRoles(domain.RoleEmployer, domain.RoleAdmin), handler.ListForEmployer)
		applications.GET("/:id", handler.GetByID)
		applications.PATCH("/:id", middleware.RequireRoles(domain.RoleEmployer, domain.RoleAdmin), handler.UpdateStatus)
		applications.DELETE("/:id", handler.Delete)
	}
}

type ApplyRequest struct {
	JobID       string `json:"job_id" binding:"required"`
	CoverLetter string `json:"cover_letter"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ApplicationListResponse wraps joined application listings.
type ApplicationListResponse struct {
	Count int                        `json:"count"`
	Data  []domain.ApplicationDetail `json:"data"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit an application; one per candidate and job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      ApplyRequest  true  "Application JSON"
// @Success      201          {object}  domain.Application
// @Failure      400          {object}  response.ErrorBody
// @Failure      404          {object}  response.ErrorBody
// @Failure      409          {object}  response.ErrorBody
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	app, err := h.applicationUC.Apply(c, userID, req.JobID, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusCreated, app)
}

// ListMine godoc
// @Summary      List own applications
// @Description  List the authenticated candidate's applications with job and profile summaries
// @Tags         applications
// @Produce      json
// @Success      200  {object}  ApplicationListResponse
// @Failure      404  {object}  response.ErrorBody
// @Router       /applications/my-applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	details, err := h.applicationUC.ListMine(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, ApplicationListResponse{Count: len(details), Data: details})
}

// ListForEmployer godoc
// @Summary      List applications to own jobs
// @Description  List applications against the authenticated employer's postings
// @Tags         applications
// @Produce      json
// @Success      200  {object}  ApplicationListResponse
// @Router       /applications/employer [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForEmployer(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	details, err := h.applicationUC.ListForEmployer(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, ApplicationListResponse{Count: len(details), Data: details})
}

// GetByID godoc
// @Summary      Get application details
// @Description  Fetch a single application; caller must own it as candidate or own the job as employer
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  domain.ApplicationDetail
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	detail, err := h.applicationUC.GetByID(c, userID, role, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, detail)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Set status to one of Applied, Under Review, Interview, Rejected, Hired; owning employer only
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Application ID"
// @Param        status  body      UpdateStatusRequest  true  "New status"
// @Success      200     {object}  domain.ApplicationDetail
// @Failure      400     {object}  response.ErrorBody
// @Failure      403     {object}  response.ErrorBody
// @Failure      404     {object}  response.ErrorBody
// @Router       /applications/{id} [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	detail, err := h.applicationUC.UpdateStatus(c, userID, c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, detail)
}

// Delete godoc
// @Summary      Withdraw or remove an application
// @Description  Candidate may delete their own application; employer may delete applications to their own jobs
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "Application ID"
// @Success      204  "deleted"
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if err := h.applicationUC.Delete(c, userID, role, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
