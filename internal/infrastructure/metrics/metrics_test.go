package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestGateRecorder_RecordDecision(t *testing.T) {
	recorder := NewGateRecorder()
	before := counterValue(t, gateDecisions.WithLabelValues("space", "payment_required"))

	recorder.RecordDecision("space", "payment_required", 3*time.Millisecond)
	recorder.RecordDecision("space", "payment_required", 0)

	after := counterValue(t, gateDecisions.WithLabelValues("space", "payment_required"))
	assert.Equal(t, before+2, after)
}

func TestGateRecorder_RecordAmbiguousMatch(t *testing.T) {
	recorder := NewGateRecorder()
	before := counterValue(t, ambiguousGates.WithLabelValues("feed"))

	recorder.RecordAmbiguousMatch("feed")

	assert.Equal(t, before+1, counterValue(t, ambiguousGates.WithLabelValues("feed")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/spaces/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/metrics", gin.WrapH(Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/spaces/abc", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `gatekeeper_http_requests_total{method="GET",route="/api/spaces/:id",status="204"}`))
}
