package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/tonelab-collective/booking/internal/config"
	"github.com/tonelab-collective/booking/internal/middleware"
	"github.com/tonelab-collective/booking/internal/modules/handler"
)

type staticSessions map[string]bool

func (s staticSessions) Verify(_ context.Context, token string) (bool, error) {
	return s[token], nil
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Config:         &config.Config{},
		Log:            zap.NewNop(),
		Sessions:       staticSessions{"good": true},
		BookingHandler: handler.NewBookingHandler(nil),
		ContentHandler: handler.NewContentHandler(nil, nil),
		AdminHandler:   handler.NewAdminHandler(nil, nil, nil, false),
		ReceiptHandler: handler.NewReceiptHandler(nil),
	})
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r := testRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/bookings/6f1c1f0e-8c7a-4a55-9d1e-7f6c1c3b2a10"},
		{http.MethodGet, "/api/content"},
		{http.MethodPut, "/api/content/6f1c1f0e-8c7a-4a55-9d1e-7f6c1c3b2a10"},
		{http.MethodPost, "/api/content/upload-image"},
		{http.MethodPost, "/api/content/images"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/recent-bookings"},
		{http.MethodGet, "/api/admin/bookings"},
		{http.MethodGet, "/api/admin/bookings/6f1c1f0e-8c7a-4a55-9d1e-7f6c1c3b2a10/notifications"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			req := httptest.NewRequest(rt.method, rt.path, nil)
			req.AddCookie(&http.Cookie{Name: middleware.AdminCookie, Value: "stale"})
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
