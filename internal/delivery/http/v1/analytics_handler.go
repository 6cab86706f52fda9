package v1

import (
	"net/http"

	"go-resume-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewAnalyticsHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &AnalyticsHandler{candidateUC: candidateUC}

	r.GET("/filters", handler.GetFilters)
	r.GET("/analytics", handler.GetAnalytics)
}

// GetFilters godoc
// @Summary      Filter values
// @Description  Distinct skills and cities for populating the table filters
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  domain.FilterValues
// @Router       /api/filters [get]
func (h *AnalyticsHandler) GetFilters(c *gin.Context) {
	filters, err := h.candidateUC.GetFilters(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, filters)
}

// GetAnalytics godoc
// @Summary      Dashboard analytics
// @Description  Candidate counts per skill and per experience bucket
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  domain.Analytics
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.candidateUC.GetAnalytics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}
