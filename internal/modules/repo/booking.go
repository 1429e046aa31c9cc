package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"github.com/tonelab-collective/booking/internal/pkg/bookingcheck"
	"gorm.io/gorm"
)

type BookingRepo interface {
	Create(ctx context.Context, b *model.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]*model.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type bookingRepo struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewBookingRepo stores booking days in loc; nil means time.Local.
func NewBookingRepo(db *gorm.DB, loc *time.Location) BookingRepo {
	if loc == nil {
		loc = time.Local
	}
	return &bookingRepo{db: db, loc: loc, now: time.Now}
}

// BookingDay maps t to its calendar day in loc, encoded as a UTC midnight so
// the date column never shifts with the driver's zone.
func BookingDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Create fills ID, CreatedAt and BookingDay when unset. A second booking for the
// same email and day fails with bookingcheck.ErrDuplicateBooking.
func (r *bookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.now()
	}
	b.BookingDay = BookingDay(b.CreatedAt, r.loc)

	err := r.db.WithContext(ctx).Create(b).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return bookingcheck.ErrDuplicateBooking
	}
	return err
}

func (r *bookingRepo) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) List(ctx context.Context) ([]*model.Booking, error) {
	var out []*model.Booking
	return out, r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
}

func (r *bookingRepo) ListByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	var out []*model.Booking
	err := r.db.WithContext(ctx).
		Where("email = ?", bookingcheck.NormalizeEmail(email)).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// Delete reports whether a row was removed.
func (r *bookingRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Booking{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
