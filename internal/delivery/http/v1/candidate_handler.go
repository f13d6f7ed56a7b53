package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/storage"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
	files       *storage.LocalStore
}

func NewCandidateHandler(public *gin.RouterGroup, protected *gin.RouterGroup, candidateUC domain.CandidateUsecase, files *storage.LocalStore) {
	handler := &CandidateHandler{candidateUC: candidateUC, files: files}

	// Public routes - candidate search is open for employers without accounts
	publicCandidates := public.Group("/candidates")
	{
		publicCandidates.GET("", handler.Search)
		publicCandidates.GET("/:id", handler.GetProfile)
	}

	// Protected routes - profile management
	protectedCandidates := protected.Group("/candidates")
	{
		protectedCandidates.POST("", middleware.RequireRoles(domain.RoleCandidate, domain.RoleAdmin), handler.CreateProfile)
		protectedCandidates.PATCH("/:id", handler.UpdateProfile)
		protectedCandidates.DELETE("/:id", handler.DeleteProfile)
	}
}

type CreateCandidateRequest struct {
	FullName    string               `json:"full_name" binding:"required"`
	Email       string               `json:"email" binding:"required,email"`
	Phone       string               `json:"phone"`
	Skills      []string             `json:"skills"`
	Education   []domain.Education   `json:"education"`
	WorkHistory []domain.WorkHistory `json:"work_history"`
	ResumeText  string               `json:"resume_text"`
}

type UpdateCandidateRequest struct {
	FullName    *string              `json:"full_name"`
	Email       *string              `json:"email"`
	Phone       *string              `json:"phone"`
	Skills      []string             `json:"skills"`
	Education   []domain.Education   `json:"education"`
	WorkHistory []domain.WorkHistory `json:"work_history"`
	ResumeText  *string              `json:"resume_text"`
}

// CandidateListResponse is the paginated candidate search payload.
type CandidateListResponse struct {
	Count      int                `json:"count"`
	Total      int64              `json:"total"`
	Pagination *domain.Pagination `json:"pagination"`
	Data       []domain.Candidate `json:"data"`
}

// CreateProfile godoc
// @Summary      Create candidate profile
// @Description  Create the caller's candidate profile; one per user
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        profile  body      CreateCandidateRequest  true  "Profile JSON"
// @Success      201      {object}  domain.Candidate
// @Failure      400      {object}  response.ErrorBody
// @Failure      409      {object}  response.ErrorBody
// @Router       /candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) CreateProfile(c *gin.Context) {
	var req CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	candidate := &domain.Candidate{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Skills:      req.Skills,
		Education:   req.Education,
		WorkHistory: req.WorkHistory,
		ResumeText:  req.ResumeText,
	}

	if err := h.candidateUC.CreateProfile(c, userID, candidate); err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusCreated, candidate)
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  domain.Candidate
// @Failure      404  {object}  response.ErrorBody
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	candidate, err := h.candidateUC.GetProfile(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, candidate)
}

// UpdateProfile godoc
// @Summary      Update candidate profile
// @Description  Partially update the profile. Accepts JSON, or multipart with a "data" JSON field and an optional "resume" file (pdf, doc, docx, txt)
// @Tags         candidates
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  domain.Candidate
// @Failure      400  {object}  response.ErrorBody
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /candidates/{id} [patch]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateCandidateRequest
	var resume *domain.ResumeFile

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if data := c.PostForm("data"); data != "" {
			if err := json.Unmarshal([]byte(data), &req); err != nil {
				c.Error(apperror.BadRequest("invalid data field: " + err.Error()))
				return
			}
		}

		fileHeader, err := c.FormFile("resume")
		if err == nil {
			resume, err = h.storeResume(c, fileHeader)
			if err != nil {
				c.Error(err)
				return
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	upd := domain.CandidateUpdate{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Skills:      req.Skills,
		Education:   req.Education,
		WorkHistory: req.WorkHistory,
		ResumeText:  req.ResumeText,
		ResumeFile:  resume,
	}

	candidate, err := h.candidateUC.UpdateProfile(c, c.Param("id"), userID, upd)
	if err != nil {
		// The profile update failed after the file landed on disk; do not
		// leave the orphan behind.
		if resume != nil {
			h.files.Remove(resume.Filename)
		}
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, candidate)
}

// storeResume validates the upload by extension and magic bytes, then
// writes it through the local store. The validated head bytes are
// replayed ahead of the remaining stream so nothing is lost.
func (h *CandidateHandler) storeResume(c *gin.Context, fileHeader *multipart.FileHeader) (*domain.ResumeFile, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.BadRequest("cannot read uploaded file")
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, apperror.BadRequest("cannot read uploaded file")
	}
	head = head[:n]

	result := validation.ValidateResumeFile(fileHeader.Filename, head)
	if !result.Valid {
		audit.Event(audit.EventUploadReject, c.GetString(string(domain.KeyUserID)), c.ClientIP(), result.Error)
		return nil, apperror.BadRequest(result.Error)
	}

	filename, url, err := h.files.Save(fileHeader.Filename, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.ResumeFile{Filename: filename, URL: url}, nil
}

// DeleteProfile godoc
// @Summary      Delete candidate profile
// @Tags         candidates
// @Produce      json
// @Param        id   path  string  true  "Candidate ID"
// @Success      204  "deleted"
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /candidates/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) DeleteProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.candidateUC.DeleteProfile(c, c.Param("id"), userID); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Search godoc
// @Summary      Search candidates
// @Description  Full-text search over profiles; "skills" requires all listed skills (comma separated)
// @Tags         candidates
// @Produce      json
// @Param        search     query     string  false  "Full-text search"
// @Param        skills     query     string  false  "Comma separated skills, all required"
// @Param        sortBy     query     string  false  "Sort field"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  CandidateListResponse
// @Failure      400        {object}  response.ErrorBody
// @Router       /candidates [get]
func (h *CandidateHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	var skills []string
	if raw := c.Query("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
	}

	q := domain.CandidateSearchQuery{
		Search:    c.Query("search"),
		SkillsAll: skills,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      page,
		Limit:     limit,
	}

	candidates, total, pagination, err := h.candidateUC.Search(c, q)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, CandidateListResponse{
		Count:      len(candidates),
		Total:      total,
		Pagination: pagination,
		Data:       candidates,
	})
}
