package bookingcheck

import (
	"errors"
	"strings"
	"time"

	"github.com/tonelab-collective/booking/internal/modules/model"
)

var ErrDuplicateBooking = errors.New("duplicate booking")

// DuplicateMessage is shown to the customer when ErrDuplicateBooking is returned.
const DuplicateMessage = "This email address has already been used for a booking today. Each email can only book once per day."

// DayStart returns local midnight of t's calendar day in t's location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayWindow returns the half-open window [start, end) of the calendar day containing now.
// end is the next midnight, which is not always start+24h across DST changes.
func DayWindow(now time.Time) (start, end time.Time) {
	start = DayStart(now)
	return start, start.AddDate(0, 0, 1)
}

// CheckDuplicate rejects email when any existing booking with the same address
// (case-insensitive) was created inside today's window.
func CheckDuplicate(email string, existing []*model.Booking, now time.Time) error {
	start, end := DayWindow(now)
	email = NormalizeEmail(email)
	for _, b := range existing {
		if b == nil || !strings.EqualFold(b.Email, email) {
			continue
		}
		if !b.CreatedAt.Before(start) && b.CreatedAt.Before(end) {
			return ErrDuplicateBooking
		}
	}
	return nil
}
