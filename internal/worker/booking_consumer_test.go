package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"github.com/tonelab-collective/booking/internal/modules/service"
	"github.com/tonelab-collective/booking/internal/pkg/notify"
	"go.uber.org/zap"
)

type MockFollowUp struct {
	mock.Mock
}

func (m *MockFollowUp) Run(ctx context.Context, b *model.Booking) notify.Result {
	args := m.Called(ctx, b)
	return args.Get(0).(notify.Result)
}

// sliceSource feeds fixed bodies and then waits for cancellation.
type sliceSource struct {
	bodies [][]byte
	errs   []error
}

func (s *sliceSource) Handle(ctx context.Context, handler func(context.Context, []byte) error) error {
	for _, b := range s.bodies {
		s.errs = append(s.errs, handler(ctx, b))
	}
	<-ctx.Done()
	return ctx.Err()
}

// flakySource fails its first session as a dropped broker channel would,
// then delivers bodies and waits for cancellation.
type flakySource struct {
	mu       sync.Mutex
	sessions int
	bodies   [][]byte
}

func (s *flakySource) Handle(ctx context.Context, handler func(context.Context, []byte) error) error {
	s.mu.Lock()
	s.sessions++
	n := s.sessions
	s.mu.Unlock()
	if n == 1 {
		return errors.New("consumer channel closed")
	}
	for _, b := range s.bodies {
		_ = handler(ctx, b)
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestBookingConsumer_HandleMessage(t *testing.T) {
	id := uuid.New()
	body, err := sonic.Marshal(service.BookingCreatedEvent{
		Booking:    model.Booking{ID: id, Email: "jane@tonelab.co", CreatedAt: time.Now()},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	fu := &MockFollowUp{}
	fu.On("Run", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
		return b.ID == id && b.Email == "jane@tonelab.co"
	})).Return(notify.Result{Delivered: true, Channel: "email"})

	c := NewBookingConsumer(nil, fu, time.Second, zap.NewNop())
	require.NoError(t, c.HandleMessage(context.Background(), body))
	fu.AssertExpectations(t)
}

func TestBookingConsumer_RejectsBadMessages(t *testing.T) {
	fu := &MockFollowUp{}
	c := NewBookingConsumer(nil, fu, time.Second, zap.NewNop())

	assert.Error(t, c.HandleMessage(context.Background(), []byte("not json")))
	assert.Error(t, c.HandleMessage(context.Background(), []byte(`{"booking":{}}`)))
	fu.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestBookingConsumer_Run(t *testing.T) {
	body, _ := sonic.Marshal(service.BookingCreatedEvent{Booking: model.Booking{ID: uuid.New()}})
	src := &sliceSource{bodies: [][]byte{body, []byte("{")}}
	fu := &MockFollowUp{}
	fu.On("Run", mock.Anything, mock.Anything).Return(notify.Result{Channel: notify.FallbackChannel})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewBookingConsumer(src, fu, time.Second, zap.NewNop())
	require.NoError(t, c.Run(ctx))
	require.Len(t, src.errs, 2)
	assert.NoError(t, src.errs[0])
	assert.Error(t, src.errs[1])
}

func TestBookingConsumer_RunResumesAfterChannelClose(t *testing.T) {
	id := uuid.New()
	body, _ := sonic.Marshal(service.BookingCreatedEvent{Booking: model.Booking{ID: id}})
	src := &flakySource{bodies: [][]byte{body}}

	done := make(chan struct{})
	fu := &MockFollowUp{}
	fu.On("Run", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool { return b.ID == id })).
		Return(notify.Result{Delivered: true, Channel: "email"}).
		Run(func(mock.Arguments) { close(done) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewBookingConsumer(src, fu, time.Second, zap.NewNop())
	c.retryDelay = 10 * time.Millisecond

	runErr := make(chan error, 1)
	go func() { runErr <- c.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("follow-up not run after the source recovered")
	}
	cancel()
	require.NoError(t, <-runErr)

	src.mu.Lock()
	defer src.mu.Unlock()
	assert.Equal(t, 2, src.sessions)
	fu.AssertExpectations(t)
}

func TestBookingConsumer_RunStopsDuringBackoff(t *testing.T) {
	src := &flakySource{}
	c := NewBookingConsumer(src, &MockFollowUp{}, time.Second, zap.NewNop())
	c.retryDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, c.Run(ctx))
	assert.Equal(t, 1, src.sessions)
}
