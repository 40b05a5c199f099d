package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/postdigester/donation-backend/pkg/logger"
	"github.com/postdigester/donation-backend/pkg/metrics"
)

func TestRequestLogger_LogsAndCounts(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)
	logger.Init("info")

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/api/v1/donations/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/v1/donations/:id", "404"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/donations/abc", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, buf.String(), "/api/v1/donations/abc")
	require.Contains(t, buf.String(), "404")
	after := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/v1/donations/:id", "404"))
	require.Equal(t, 1.0, after-before)
}
