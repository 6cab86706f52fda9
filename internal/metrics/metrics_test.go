package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/ping", "204"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/ping", "204")))
}

func TestIngestCollectors(t *testing.T) {
	before := testutil.ToFloat64(filesProcessedTotal.WithLabelValues(OutcomeFailure, "extract"))
	ObserveFile(OutcomeFailure, "extract", 10*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(filesProcessedTotal.WithLabelValues(OutcomeFailure, "extract")))

	release := LLMAdmitted()
	assert.Equal(t, float64(1), testutil.ToFloat64(llmInFlight))
	release()
	assert.Equal(t, float64(0), testutil.ToFloat64(llmInFlight))
}
