package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		BackendRequestsTotal,
		BackendRequestDuration,
		UploadsTotal,
		UploadBytes,
		ActivityWriteFailures,
		IdempotencyOutcomes,
	}
	for _, c := range collectors {
		desc := make(chan *prometheus.Desc, 4)
		c.Describe(desc)
		close(desc)
		require.NotNil(t, <-desc)
	}
}

func TestObserveBackend(t *testing.T) {
	before := testutil.ToFloat64(BackendRequestsTotal.WithLabelValues("loan-application.get", "200"))
	ObserveBackend("loan-application.get", "200", time.Now().Add(-20*time.Millisecond))
	after := testutil.ToFloat64(BackendRequestsTotal.WithLabelValues("loan-application.get", "200"))
	assert.Equal(t, before+1, after)
}

func TestHTTPMiddleware_UsesRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(HTTPMiddleware())
	e.GET("/applications/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/applications/:id", "200")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications/abc123", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestHTTPMiddleware_RecordsHandledErrorStatus(t *testing.T) {
	e := echo.New()
	e.Use(HTTPMiddleware())
	e.GET("/borrowers/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "borrower not found")
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/borrowers/:id", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/borrowers/b1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
