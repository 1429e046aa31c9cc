package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tonelab-collective/booking/internal/middleware"
	"github.com/tonelab-collective/booking/internal/modules/serializer"
	"github.com/tonelab-collective/booking/internal/modules/service"
)

const recentBookingsLimit = 10

type AdminHandler struct {
	auth          service.AdminService
	bookings      service.BookingService
	notifications service.NotificationHistory
	secureCookie  bool
}

func NewAdminHandler(auth service.AdminService, bookings service.BookingService, notifications service.NotificationHistory, secureCookie bool) *AdminHandler {
	return &AdminHandler{auth: auth, bookings: bookings, notifications: notifications, secureCookie: secureCookie}
}

type LoginReq struct {
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookie, token, maxAge, "/", "", h.secureCookie, true)
}

// Login godoc
//
//	@Summary		Admin login
//	@Description	Checks the admin password and sets the admin_auth session cookie.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.LoginReq	true	"Admin password"
//	@Success		200		{object}	serializer.SuccessResponse
//	@Failure		401		{object}	serializer.ErrorResponse
//	@Router			/admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Invalid password"))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			c.JSON(http.StatusUnauthorized, serializer.AuthErr("Invalid password"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Login failed", err))
		return
	}

	h.setSessionCookie(c, token, int(h.auth.SessionTTL().Seconds()))
	c.JSON(http.StatusOK, serializer.SuccessResponse{Success: true})
}

// Logout godoc
//
//	@Summary	Admin logout
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	serializer.SuccessResponse
//	@Router		/admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.AdminCookie); err == nil {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			// The cookie is cleared regardless; the session expires on its own.
			_ = c.Error(err)
		}
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, serializer.SuccessResponse{Success: true})
}

// Stats godoc
//
//	@Summary		Booking statistics
//	@Description	Totals for the dashboard. Revenue uses the price in effect today.
//	@Tags			admin
//	@Produce		json
//	@Security		AdminCookie
//	@Success		200	{object}	service.BookingStats
//	@Failure		401	{object}	serializer.ErrorResponse
//	@Router			/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	st, err := h.bookings.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to fetch stats", err))
		return
	}
	c.JSON(http.StatusOK, st)
}

// RecentBookings godoc
//
//	@Summary	Latest bookings
//	@Tags		admin
//	@Produce	json
//	@Security	AdminCookie
//	@Success	200	{array}		model.Booking
//	@Failure	401	{object}	serializer.ErrorResponse
//	@Router		/admin/recent-bookings [get]
func (h *AdminHandler) RecentBookings(c *gin.Context) {
	items, err := h.bookings.Recent(c.Request.Context(), recentBookingsLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to fetch recent bookings", err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Bookings godoc
//
//	@Summary	All bookings
//	@Tags		admin
//	@Produce	json
//	@Security	AdminCookie
//	@Success	200	{array}		model.Booking
//	@Failure	401	{object}	serializer.ErrorResponse
//	@Router		/admin/bookings [get]
func (h *AdminHandler) Bookings(c *gin.Context) {
	items, err := h.bookings.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to fetch bookings", err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// BookingNotifications godoc
//
//	@Summary		Notification history of a booking
//	@Description	Every follow-up delivery run recorded for the booking, oldest first.
//	@Tags			admin
//	@Produce		json
//	@Security		AdminCookie
//	@Param			id	path		string	true	"Booking ID"	Format(uuid)
//	@Success		200	{array}		model.NotificationLog
//	@Failure		401	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/admin/bookings/{id}/notifications [get]
func (h *AdminHandler) BookingNotifications(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFound("Booking not found"))
		return
	}
	items, err := h.notifications.ListByBooking(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to fetch notifications", err))
		return
	}
	c.JSON(http.StatusOK, items)
}
