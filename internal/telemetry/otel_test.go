package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/tonelab-collective/booking/internal/config"
)

func TestOtlpEndpoint(t *testing.T) {
	assert.Equal(t, "collector:4317", otlpEndpoint("http://collector:4317"))
	assert.Equal(t, "collector:4317", otlpEndpoint("https://collector:4317"))
	assert.Equal(t, "collector:4317", otlpEndpoint("collector:4317"))
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(0).Description())
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(3).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), samplerFor(0.25).Description())
}

func TestTraced(t *testing.T) {
	assert.True(t, traced("/api/bookings"))
	assert.True(t, traced("/objects/receipts/abc"))
	assert.True(t, traced("/public-objects/hero.jpg"))
	assert.False(t, traced("/health"))
	assert.False(t, traced("/swagger/index.html"))
}

func TestSetupDisabled(t *testing.T) {
	cfg := &config.Config{}
	tp, err := SetupTracing(cfg)
	require.NoError(t, err)
	assert.Nil(t, tp)

	mp, err := SetupMetrics(cfg)
	require.NoError(t, err)
	assert.Nil(t, mp)
}

func TestTraceIDMiddlewareWithoutSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("X-Trace-Id"))
}
