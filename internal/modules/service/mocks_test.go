package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tonelab-collective/booking/internal/infra/blob"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"github.com/tonelab-collective/booking/internal/pkg/notify"
)

// MockBookingRepo is a mock implementation of BookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepo) List(ctx context.Context) ([]*model.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockSiteContentRepo is a mock implementation of SiteContentRepo
type MockSiteContentRepo struct {
	mock.Mock
}

func (m *MockSiteContentRepo) List(ctx context.Context) ([]*model.SiteContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SiteContent), args.Error(1)
}

func (m *MockSiteContentRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSiteContentRepo) SeedDefaults(ctx context.Context, defaults []model.SiteContent) (int64, error) {
	args := m.Called(ctx, defaults)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSiteContentRepo) Get(ctx context.Context, id uuid.UUID) (*model.SiteContent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteContent), args.Error(1)
}

func (m *MockSiteContentRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.SiteContent, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteContent), args.Error(1)
}

// MockNotificationLogRepo is a mock implementation of NotificationLogRepo
type MockNotificationLogRepo struct {
	mock.Mock
}

func (m *MockNotificationLogRepo) Create(ctx context.Context, l *model.NotificationLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockNotificationLogRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.NotificationLog, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.NotificationLog), args.Error(1)
}

type MockMirror struct {
	mock.Mock
}

func (m *MockMirror) Append(ctx context.Context, b *model.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockMirror) List(ctx context.Context) ([]*model.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockMirror) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, a notify.Alert) notify.Result {
	args := m.Called(ctx, a)
	return args.Get(0).(notify.Result)
}

type MockBookingEvents struct {
	mock.Mock
}

func (m *MockBookingEvents) BookingCreated(ctx context.Context, b *model.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type MockFollowUp struct {
	mock.Mock
}

func (m *MockFollowUp) Run(ctx context.Context, b *model.Booking) notify.Result {
	args := m.Called(ctx, b)
	return args.Get(0).(notify.Result)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, exchange, routingKey string, body any) error {
	args := m.Called(ctx, exchange, routingKey, body)
	return args.Error(0)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) UploadFormFile(ctx context.Context, prefix string, fh *multipart.FileHeader, accept func(string) bool) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, prefix, fh, accept)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

func (m *MockObjectStore) PresignPut(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}
