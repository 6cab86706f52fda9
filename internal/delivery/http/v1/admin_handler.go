package v1

import (
	"net/http"

	"go-resume-backend/internal/delivery/http/response"
	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"
	"go-resume-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	schema domain.SchemaManager
}

// NewAdminHandler registers destructive maintenance routes. Only mount it when
// database resets are explicitly enabled.
func NewAdminHandler(r gin.IRoutes, schema domain.SchemaManager) {
	handler := &AdminHandler{schema: schema}

	r.POST("/recreate-db/", handler.RecreateDB)
}

// RecreateDB godoc
// @Summary      Recreate database
// @Description  Drops and recreates every table. Registered only when ENABLE_DB_RESET is true.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /recreate-db/ [post]
func (h *AdminHandler) RecreateDB(c *gin.Context) {
	if err := h.schema.RecreateSchema(c.Request.Context()); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	logger.Log.Warn("database schema recreated", "client_ip", c.ClientIP())
	response.Success(c, http.StatusOK, "Database recreated", nil)
}
