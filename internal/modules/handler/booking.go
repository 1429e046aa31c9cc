package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tonelab-collective/booking/internal/modules/serializer"
	"github.com/tonelab-collective/booking/internal/modules/service"
	"github.com/tonelab-collective/booking/internal/pkg/bookingcheck"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(s service.BookingService) *BookingHandler {
	return &BookingHandler{svc: s}
}

type BookingSummary struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateBookingResp struct {
	Success bool           `json:"success"`
	Booking BookingSummary `json:"booking"`
}

// CreateBooking godoc
//
//	@Summary		Submit a booking
//	@Description	Validate and store a booking. One booking per email per day. Notifications are sent after the response.
//	@Tags			booking
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		bookingcheck.Input	true	"Booking form"
//	@Success		201		{object}	handler.CreateBookingResp
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		500		{object}	serializer.ErrorResponse
//	@Router			/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in bookingcheck.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Request body must be a JSON object", err))
		return
	}

	b, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, serializer.ValidationErr(verr.Fields))
		case errors.Is(err, service.ErrDuplicateBooking):
			c.JSON(http.StatusBadRequest, serializer.ErrorResponse{
				Error:   "Duplicate booking detected",
				Message: bookingcheck.DuplicateMessage,
			})
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to create booking", err))
		}
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResp{
		Success: true,
		Booking: BookingSummary{ID: b.ID, FullName: b.FullName, Email: b.Email, CreatedAt: b.CreatedAt},
	})
}

// ListBookings godoc
//
//	@Summary		List bookings
//	@Description	All bookings, newest first. Includes spreadsheet-only rows when merge on read is enabled.
//	@Tags			booking
//	@Produce		json
//	@Success		200	{array}		model.Booking
//	@Failure		500	{object}	serializer.ErrorResponse
//	@Router			/bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to fetch bookings", err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetBooking godoc
//
//	@Summary	Get booking
//	@Tags		booking
//	@Produce	json
//	@Param		id	path		string	true	"Booking ID"	format(uuid)
//	@Success	200	{object}	model.Booking
//	@Failure	404	{object}	serializer.ErrorResponse
//	@Router		/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An id that cannot exist is reported the same way as a missing one.
		c.JSON(http.StatusNotFound, serializer.NotFound("Booking not found"))
		return
	}

	b, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFound("Booking not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to fetch booking", err))
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBooking godoc
//
//	@Summary		Delete booking
//	@Description	Deleting an id that does not exist also succeeds.
//	@Tags			booking
//	@Produce		json
//	@Param			id	path		string	true	"Booking ID"	format(uuid)
//	@Security		AdminCookie
//	@Success		200	{object}	serializer.SuccessResponse
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		401	{object}	serializer.ErrorResponse
//	@Router			/bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Booking id must be a UUID", err))
		return
	}

	if _, err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to delete booking", err))
		return
	}
	c.JSON(http.StatusOK, serializer.SuccessResponse{Success: true, Message: "Booking deleted successfully"})
}
