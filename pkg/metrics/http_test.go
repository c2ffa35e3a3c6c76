package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewHTTPMetrics("comments-test")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, p := range []string{"/items/1", "/items/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	require.Equal(t, 2.0, testutil.ToFloat64(m.reqTotal.WithLabelValues(http.MethodGet, "/items/:id", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.reqTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))

	CommentOperations.WithLabelValues("list", "ok").Inc()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "http_server_requests_total")
	require.Contains(t, body, `service="comments-test"`)
	require.Contains(t, body, "gogotex_comments_operations_total")
}
