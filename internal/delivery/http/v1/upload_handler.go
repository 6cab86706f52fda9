package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go-resume-backend/internal/delivery/http/middleware"
	"go-resume-backend/internal/document"
	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"
	"go-resume-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file payload
const formOverheadBytes = 1 << 20

type UploadConfig struct {
	MaxFiles     int
	MaxFileBytes int64
}

type UploadHandler struct {
	ingestUC domain.IngestUsecase
	cfg      UploadConfig
}

func NewUploadHandler(r gin.IRoutes, ingestUC domain.IngestUsecase, cfg UploadConfig, limiter middleware.UploadLimiter) {
	handler := &UploadHandler{ingestUC: ingestUC, cfg: cfg}

	r.POST("/upload-resumes/", middleware.UploadRateLimit(limiter), handler.UploadResumes)
}

// UploadResumes godoc
// @Summary      Upload resumes
// @Description  Parses every uploaded PDF or DOCX into a candidate record. Files fail independently; the response lists created ids and one error per failed file.
// @Tags         ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Resume files (repeat the field for several files)"
// @Success      200  {object}  domain.IngestResult
// @Failure      400  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /upload-resumes/ [post]
func (h *UploadHandler) UploadResumes(c *gin.Context) {
	if limit := h.maxRequestBytes(); limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	form, err := c.MultipartForm()
	if err != nil {
		if isBodyTooLarge(err) {
			c.Error(apperror.RequestTooLarge("Upload exceeds the maximum request size"))
			return
		}
		c.Error(apperror.BadRequest("Expected a multipart form with one or more \"files\" fields"))
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.Error(apperror.BadRequest("No files uploaded"))
		return
	}
	if h.cfg.MaxFiles > 0 && len(headers) > h.cfg.MaxFiles {
		c.Error(apperror.BadRequest(fmt.Sprintf("At most %d files can be uploaded at once", h.cfg.MaxFiles)))
		return
	}

	files := make([]domain.UploadedFile, 0, len(headers))
	for i, fh := range headers {
		data, err := readPart(fh, h.cfg.MaxFileBytes)
		if err != nil {
			c.Error(apperror.Internal(fmt.Errorf("read upload %q: %w", fh.Filename, err)))
			return
		}

		name := security.SanitizeFilename(fh.Filename)
		if name == "" {
			name = fmt.Sprintf("file-%d", i+1)
		}
		files = append(files, domain.UploadedFile{
			Filename: name,
			MIMEType: document.DeclaredType(name, fh.Header.Get("Content-Type")),
			Data:     data,
		})
	}

	result, err := h.ingestUC.IngestBatch(c.Request.Context(), files)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *UploadHandler) maxRequestBytes() int64 {
	if h.cfg.MaxFiles <= 0 || h.cfg.MaxFileBytes <= 0 {
		return 0
	}
	return int64(h.cfg.MaxFiles)*h.cfg.MaxFileBytes + formOverheadBytes
}

// readPart reads at most max+1 bytes so oversize files are still reported
// per file without buffering them entirely.
func readPart(fh *multipart.FileHeader, max int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if max > 0 {
		r = io.LimitReader(f, max+1)
	}
	return io.ReadAll(r)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}
