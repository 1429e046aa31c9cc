package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tonelab-collective/booking/internal/middleware"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"github.com/tonelab-collective/booking/internal/modules/service"
)

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AdminCookie {
			return c
		}
	}
	return nil
}

func TestAdminHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(*MockAdminService)
		expectedStatus int
	}{
		{
			name: "correct password",
			body: `{"password":"hunter2"}`,
			setup: func(svc *MockAdminService) {
				svc.On("Login", mock.Anything, "hunter2").Return("tok", nil)
				svc.On("SessionTTL").Return(24 * time.Hour)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"password":"nope"}`,
			setup: func(svc *MockAdminService) {
				svc.On("Login", mock.Anything, "nope").Return("", service.ErrInvalidPassword)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no password",
			body:           `{}`,
			setup:          func(*MockAdminService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "session store down",
			body: `{"password":"hunter2"}`,
			setup: func(svc *MockAdminService) {
				svc.On("Login", mock.Anything, "hunter2").Return("", errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAdminService{}
			tt.setup(svc)

			router := setupRouter()
			router.POST("/api/admin/login", NewAdminHandler(svc, &MockBookingService{}, nil, false).Login)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)

			switch tt.expectedStatus {
			case http.StatusOK:
				assert.JSONEq(t, `{"success":true}`, w.Body.String())
				c := sessionCookie(w)
				require.NotNil(t, c)
				assert.Equal(t, "tok", c.Value)
				assert.True(t, c.HttpOnly)
				assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
				assert.Equal(t, int((24 * time.Hour).Seconds()), c.MaxAge)
			case http.StatusUnauthorized:
				assert.JSONEq(t, `{"error":"Invalid password"}`, w.Body.String())
				assert.Nil(t, sessionCookie(w))
			}
		})
	}
}

func TestAdminHandler_Logout(t *testing.T) {
	svc := &MockAdminService{}
	svc.On("Logout", mock.Anything, "tok").Return(nil)

	router := setupRouter()
	router.POST("/api/admin/logout", NewAdminHandler(svc, &MockBookingService{}, nil, false).Logout)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminCookie, Value: "tok"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	c := sessionCookie(w)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
	svc.AssertExpectations(t)
}

func TestAdminHandler_Stats(t *testing.T) {
	bookings := &MockBookingService{}
	bookings.On("Stats", mock.Anything).Return(&service.BookingStats{
		TotalBookings: 3, TotalRevenue: 2670, TodayBookings: 1, PendingPayments: 1,
	}, nil)

	router := setupRouter()
	router.GET("/api/admin/stats", NewAdminHandler(&MockAdminService{}, bookings, nil, false).Stats)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalBookings":3,"totalRevenue":2670,"todayBookings":1,"pendingPayments":1}`, w.Body.String())
	bookings.AssertExpectations(t)
}

func TestAdminHandler_RecentBookings(t *testing.T) {
	bookings := &MockBookingService{}
	bookings.On("Recent", mock.Anything, recentBookingsLimit).Return([]*model.Booking{}, nil)

	router := setupRouter()
	router.GET("/api/admin/recent-bookings", NewAdminHandler(&MockAdminService{}, bookings, nil, false).RecentBookings)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/recent-bookings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	bookings.AssertExpectations(t)
}

func TestAdminHandler_BookingsFailure(t *testing.T) {
	bookings := &MockBookingService{}
	bookings.On("List", mock.Anything).Return(nil, errors.New("boom"))

	router := setupRouter()
	router.GET("/api/admin/bookings", NewAdminHandler(&MockAdminService{}, bookings, nil, false).Bookings)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch bookings")
}

func TestAdminHandler_BookingNotifications(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		path           string
		setup          func(*MockNotificationHistory)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "delivery runs",
			path: "/api/admin/bookings/" + id.String() + "/notifications",
			setup: func(h *MockNotificationHistory) {
				h.On("ListByBooking", mock.Anything, id).Return([]*model.NotificationLog{
					{BookingID: id, Delivered: true, Channel: "email"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"channel":"email"`,
		},
		{
			name: "no runs yet",
			path: "/api/admin/bookings/" + id.String() + "/notifications",
			setup: func(h *MockNotificationHistory) {
				h.On("ListByBooking", mock.Anything, id).Return([]*model.NotificationLog{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "malformed id",
			path:           "/api/admin/bookings/not-a-uuid/notifications",
			setup:          func(*MockNotificationHistory) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Booking not found",
		},
		{
			name: "store failure",
			path: "/api/admin/bookings/" + id.String() + "/notifications",
			setup: func(h *MockNotificationHistory) {
				h.On("ListByBooking", mock.Anything, id).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Failed to fetch notifications",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := &MockNotificationHistory{}
			tt.setup(history)

			router := setupRouter()
			router.GET("/api/admin/bookings/:id/notifications",
				NewAdminHandler(&MockAdminService{}, &MockBookingService{}, history, false).BookingNotifications)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			history.AssertExpectations(t)
		})
	}
}
