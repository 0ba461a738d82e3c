package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/juegoteca/backend/pkg/metrics"
)

func TestMetricsMiddleware_CountsByRouteAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(Metrics())
	g.GET("/juegos/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/juegos/:id", "200"))

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/juegos/abc", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// the counter is labelled with the route template, not the raw path
	require.Equal(t, before+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/juegos/:id", "200")))
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(Metrics())

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "unmatched", "404"))

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, before+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}
