package handler

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tonelab-collective/booking/internal/modules/model"
	"github.com/tonelab-collective/booking/internal/modules/service"
	"github.com/tonelab-collective/booking/internal/pkg/bookingcheck"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, in bookingcheck.Input) (*model.Booking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context) ([]*model.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingService) Stats(ctx context.Context) (*service.BookingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingStats), args.Error(1)
}

func (m *MockBookingService) Recent(ctx context.Context, limit int) ([]*model.Booking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) EnsureDefaults(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContentService) ListPublic(ctx context.Context) ([]*model.SiteContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SiteContent), args.Error(1)
}

func (m *MockContentService) List(ctx context.Context) ([]*model.SiteContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SiteContent), args.Error(1)
}

func (m *MockContentService) Get(ctx context.Context, id uuid.UUID) (*model.SiteContent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteContent), args.Error(1)
}

func (m *MockContentService) Update(ctx context.Context, id uuid.UUID, content string) (*model.SiteContent, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteContent), args.Error(1)
}

type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) ReceiptUploadTarget(ctx context.Context) (*service.UploadTarget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadTarget), args.Error(1)
}

func (m *MockReceiptService) ImageUploadTarget(ctx context.Context) (*service.UploadTarget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadTarget), args.Error(1)
}

func (m *MockReceiptService) Upload(ctx context.Context, fh *multipart.FileHeader) (*service.StoredReceipt, error) {
	args := m.Called(ctx, fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StoredReceipt), args.Error(1)
}

func (m *MockReceiptService) UploadImage(ctx context.Context, fh *multipart.FileHeader) (*service.StoredImage, error) {
	args := m.Called(ctx, fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StoredImage), args.Error(1)
}

func (m *MockReceiptService) ResolveURL(ctx context.Context, objectPath string) (string, error) {
	args := m.Called(ctx, objectPath)
	return args.String(0), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Login(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *MockAdminService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAdminService) Verify(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminService) SessionTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

type MockNotificationHistory struct {
	mock.Mock
}

func (m *MockNotificationHistory) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.NotificationLog, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.NotificationLog), args.Error(1)
}
