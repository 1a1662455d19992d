package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

func TestGameplayMetrics(t *testing.T) {
	r := New()
	r.ObservePlacement(tower.OutcomePerfect)
	r.ObservePlacement(tower.OutcomePerfect)
	r.ObservePlacement(tower.OutcomeChopped)
	r.ObserveGameOver(3, 12*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.placements.WithLabelValues(tower.OutcomePerfect.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.placements.WithLabelValues(tower.OutcomeChopped.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.games))

	r.SessionStarted()
	r.SessionStarted()
	r.SessionEnded()
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sessions))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveGameOver(1, time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.games))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.games))
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := New()
	router := gin.New()
	router.Use(r.GinMiddleware())
	r.Mount(router)
	router.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	router.GET("/fail", func(c *gin.Context) { c.JSON(http.StatusInternalServerError, gin.H{}) })

	for _, path := range []string{"/ok", "/fail", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(r.reqErrors.WithLabelValues("GET", "/fail", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reqErrors.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.reqInflight))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tower_http_request_duration_seconds")
}
