package v1

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"
	"go-resume-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	r.GET("/candidates/table", handler.ListCandidates)
	r.GET("/candidate/:id", handler.GetCandidate)
	r.GET("/resume/:id", handler.GetResume)
}

// ListCandidates godoc
// @Summary      List candidates
// @Description  Table view of candidates. All filters are optional; skills match when a candidate has any of them.
// @Tags         candidates
// @Produce      json
// @Param        min_exp  query  number  false  "Minimum total experience in years (inclusive)"
// @Param        max_exp  query  number  false  "Maximum total experience in years (inclusive)"
// @Param        city     query  string  false  "City, case-insensitive"
// @Param        skills   query  []string  false  "Skills, one value per repeated parameter"  collectionFormat(multi)
// @Success      200  {array}   domain.CandidateRow
// @Failure      400  {object}  response.Response
// @Router       /api/candidates/table [get]
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	var filter domain.CandidateFilter
	var err error

	if filter.MinExp, err = optionalFloat(c, "min_exp"); err != nil {
		c.Error(err)
		return
	}
	if filter.MaxExp, err = optionalFloat(c, "max_exp"); err != nil {
		c.Error(err)
		return
	}
	filter.City = c.Query("city")
	filter.SkillKeys = trimList(c.QueryArray("skills"))

	rows, err := h.candidateUC.ListCandidates(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	if rows == nil {
		rows = []domain.CandidateRow{}
	}

	c.JSON(http.StatusOK, rows)
}

// GetCandidate godoc
// @Summary      Get candidate
// @Description  Full candidate record with degrees and experiences
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {object}  domain.CandidateDetail
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/candidate/{id} [get]
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	detail, err := h.candidateUC.GetCandidate(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetResume godoc
// @Summary      Download resume
// @Description  Original uploaded document, served inline with its stored content type
// @Tags         candidates
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id   path  int  true  "Candidate ID"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/resume/{id} [get]
func (h *CandidateHandler) GetResume(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	file, err := h.candidateUC.GetResume(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	ext := security.ExtensionForType(file.MIMEType)
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(file.Filename))
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="resume_%d%s"`, id, ext))
	c.Data(http.StatusOK, file.MIMEType, file.Content)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid candidate id")
	}
	return id, nil
}

func optionalFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("%s must be a number", key))
	}
	return &v, nil
}

// trimList drops blank values. Commas are kept since skill names may contain them.
func trimList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
