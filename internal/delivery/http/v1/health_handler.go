package v1

import (
	"net/http"

	"go-resume-backend/internal/delivery/http/response"
	"go-resume-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(r gin.IRoutes, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}

	r.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Reports the status of the database and the rate limiter backend
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status, healthy := h.healthUC.Check(c.Request.Context())
	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
