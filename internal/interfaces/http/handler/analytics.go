package handler

import (
	"github.com/gin-gonic/gin"

	analyticsapp "github.com/rarerevisit/backend/internal/application/analytics"
)

// AnalyticsHandler handles the on-demand analytics endpoints
type AnalyticsHandler struct {
	BaseHandler
	summaryService *analyticsapp.SummaryService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(summaryService *analyticsapp.SummaryService) *AnalyticsHandler {
	return &AnalyticsHandler{
		summaryService: summaryService,
	}
}

// Summary godoc
// @Summary      Get analytics summary
// @Description  Compute the current analytics snapshot from stored posts and accounts
// @Tags         analytics
// @Produce      json
// @Success      200 {object} dto.Response{data=analyticsapp.SummaryResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.summaryService.Summarize(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
