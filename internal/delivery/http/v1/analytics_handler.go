package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsUC domain.AnalyticsUsecase
}

func NewAnalyticsHandler(protected *gin.RouterGroup, analyticsUC domain.AnalyticsUsecase) {
	handler := &AnalyticsHandler{analyticsUC: analyticsUC}

	// Any authenticated role may read analytics.
	analytics := protected.Group("/analytics")
	{
		analytics.GET("/jobs-per-industry", handler.JobsPerIndustry)
		analytics.GET("/top-skills", handler.TopSkills)
		analytics.GET("/average-salary", handler.AverageSalary)
		analytics.GET("/application-trends", handler.ApplicationTrends)
	}
}

// JobsPerIndustry godoc
// @Summary      Active job counts by industry
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  domain.IndustryJobCount
// @Router       /analytics/jobs-per-industry [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) JobsPerIndustry(c *gin.Context) {
	stats, err := h.analyticsUC.JobsPerIndustry(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"data": stats})
}

// TopSkills godoc
// @Summary      Most requested skills across active jobs
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  domain.SkillCount
// @Router       /analytics/top-skills [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) TopSkills(c *gin.Context) {
	stats, err := h.analyticsUC.TopSkills(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"data": stats})
}

// AverageSalary godoc
// @Summary      Average salary bounds by job title
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  domain.TitleSalaryStat
// @Router       /analytics/average-salary [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) AverageSalary(c *gin.Context) {
	stats, err := h.analyticsUC.AverageSalaryByTitle(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"data": stats})
}

// ApplicationTrends godoc
// @Summary      Application volume per month
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  domain.MonthlyApplicationCount
// @Router       /analytics/application-trends [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) ApplicationTrends(c *gin.Context) {
	stats, err := h.analyticsUC.ApplicationTrends(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"data": stats})
}
