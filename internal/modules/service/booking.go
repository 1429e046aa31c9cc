package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tonelab-collective/booking/internal/config"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"github.com/tonelab-collective/booking/internal/modules/repo"
	"github.com/tonelab-collective/booking/internal/pkg/bookingcheck"
	"github.com/tonelab-collective/booking/internal/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Mirror is the downstream spreadsheet copy of bookings.
type Mirror interface {
	Append(ctx context.Context, b *model.Booking) error
	List(ctx context.Context) ([]*model.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type BookingStats struct {
	TotalBookings   int `json:"totalBookings"`
	TotalRevenue    int `json:"totalRevenue"`
	TodayBookings   int `json:"todayBookings"`
	PendingPayments int `json:"pendingPayments"`
}

type BookingService interface {
	Create(ctx context.Context, in bookingcheck.Input) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Stats(ctx context.Context) (*BookingStats, error)
	Recent(ctx context.Context, limit int) ([]*model.Booking, error)
}

type bookingService struct {
	r      repo.BookingRepo
	mirror Mirror
	events BookingEvents
	cfg    *config.Config
	log    *zap.Logger
	now    func() time.Time

	// deleted holds ids removed in this process so a sheet row that could not
	// be removed is not merged back into reads.
	deleted sync.Map
}

// NewBookingService wires the intake pipeline. mirror may be nil.
func NewBookingService(r repo.BookingRepo, mirror Mirror, events BookingEvents, cfg *config.Config, log *zap.Logger) BookingService {
	return &bookingService{r: r, mirror: mirror, events: events, cfg: cfg, log: log, now: time.Now}
}

const receiptRequiredMessage = "Payment receipt is required"

func (s *bookingService) Create(ctx context.Context, in bookingcheck.Input) (*model.Booking, error) {
	b, fields := bookingcheck.Validate(in)

	var receipt string
	if in.ReceiptPath != nil {
		receipt = strings.TrimSpace(*in.ReceiptPath)
	}
	switch {
	case receipt == "" && s.cfg.Booking.RequireReceipt:
		fields = append(fields, bookingcheck.FieldError{Field: "receiptPath", Message: receiptRequiredMessage})
	case receipt != "":
		normalized, err := NormalizeObjectPath(receipt)
		if err != nil {
			fields = append(fields, bookingcheck.FieldError{Field: "receiptPath", Message: "Receipt path is invalid"})
		} else if b != nil {
			b.ReceiptPath = &normalized
		}
	}
	if len(fields) > 0 {
		telemetry.RecordBookingRejected(ctx, "validation")
		return nil, &ValidationError{Fields: fields}
	}

	now := s.now().In(s.cfg.Location())
	existing, err := s.r.ListByEmail(ctx, b.Email)
	if err != nil {
		return nil, err
	}
	if err := bookingcheck.CheckDuplicate(b.Email, existing, now); err != nil {
		telemetry.RecordBookingRejected(ctx, "duplicate")
		return nil, err
	}

	b.CreatedAt = now
	if err := s.r.Create(ctx, b); err != nil {
		if errors.Is(err, ErrDuplicateBooking) {
			telemetry.RecordBookingRejected(ctx, "duplicate")
		}
		return nil, err
	}
	telemetry.RecordBookingCreated(ctx)

	if s.events != nil {
		if err := s.events.BookingCreated(ctx, b); err != nil {
			s.log.Error("booking follow-up not scheduled", zap.String("booking_id", b.ID.String()), zap.Error(err))
		}
	}
	return b, nil
}

func sortNewestFirst(items []*model.Booking) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// mergeMirrored appends sheet rows the database does not know, matching by id
// first and then by email and creation second.
func mergeMirrored(db, sheet []*model.Booking) []*model.Booking {
	ids := make(map[uuid.UUID]struct{}, len(db))
	keys := make(map[string]struct{}, len(db))
	key := func(b *model.Booking) string {
		return strings.ToLower(b.Email) + "|" + b.CreatedAt.UTC().Truncate(time.Second).Format(time.RFC3339)
	}
	for _, b := range db {
		ids[b.ID] = struct{}{}
		keys[key(b)] = struct{}{}
	}
	out := append([]*model.Booking(nil), db...)
	for _, b := range sheet {
		if _, ok := ids[b.ID]; ok {
			continue
		}
		if _, ok := keys[key(b)]; ok {
			continue
		}
		ids[b.ID] = struct{}{}
		keys[key(b)] = struct{}{}
		out = append(out, b)
	}
	return out
}

func (s *bookingService) mergeOnRead() bool {
	return s.mirror != nil && s.cfg.Sheets.MergeOnRead
}

func (s *bookingService) List(ctx context.Context) ([]*model.Booking, error) {
	if !s.mergeOnRead() {
		items, err := s.r.List(ctx)
		if err != nil {
			return nil, err
		}
		sortNewestFirst(items)
		return items, nil
	}

	var dbItems, sheetItems []*model.Booking
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dbItems, err = s.r.List(gctx)
		return err
	})
	g.Go(func() error {
		items, err := s.mirror.List(gctx)
		if err != nil {
			s.log.Warn("sheet read failed, listing database only", zap.Error(err))
			return nil
		}
		sheetItems = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := mergeMirrored(dbItems, s.withoutDeleted(sheetItems))
	sortNewestFirst(items)
	return items, nil
}

func (s *bookingService) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, err := s.r.Get(ctx, id)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if s.mergeOnRead() {
		rows, merr := s.mirror.List(ctx)
		if merr != nil {
			s.log.Warn("sheet read failed", zap.Error(merr))
		}
		for _, row := range s.withoutDeleted(rows) {
			if row.ID == id {
				return row, nil
			}
		}
	}
	return nil, ErrBookingNotFound
}

func (s *bookingService) withoutDeleted(rows []*model.Booking) []*model.Booking {
	out := rows[:0:0]
	for _, b := range rows {
		if _, gone := s.deleted.Load(b.ID); gone {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Delete reports whether a booking was removed from the database or the
// sheet. A missing id is not an error. The sheet row is removed best-effort.
func (s *bookingService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.r.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if s.mirror != nil {
		s.deleted.Store(id, struct{}{})
		inSheet, merr := s.mirror.Delete(ctx, id)
		if merr != nil {
			s.log.Warn("sheet row not removed", zap.String("booking_id", id.String()), zap.Error(merr))
		}
		removed = removed || inSheet
	}
	if !removed {
		s.log.Info("delete of unknown booking", zap.String("booking_id", id.String()))
	}
	return removed, nil
}

func (s *bookingService) Stats(ctx context.Context) (*BookingStats, error) {
	items, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.cfg.Location())
	start, end := bookingcheck.DayWindow(now)

	st := &BookingStats{TotalBookings: len(items)}
	st.TotalRevenue = st.TotalBookings * s.cfg.CurrentPrice(now)
	for _, b := range items {
		if !b.CreatedAt.Before(start) && b.CreatedAt.Before(end) {
			st.TodayBookings++
		}
		if !b.HasReceipt() {
			st.PendingPayments++
		}
	}
	return st, nil
}

func (s *bookingService) Recent(ctx context.Context, limit int) ([]*model.Booking, error) {
	items, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
