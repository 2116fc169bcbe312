package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	availabilityDto "hotel/internal/domains/availability/model/dto"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	"hotel/internal/domains/notification"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const gardenSuiteID = "5e2d8b41-3f7a-4c9e-a1b6-8d0c2e4f6a15"

// memoryStore is a booking repository that enforces the overlap rule under one lock,
// standing in for the bookings_no_overlap constraint.
type memoryStore struct {
	mu       sync.Mutex
	room     roomModel.Room
	bookings map[string]model.Booking
}

var _ repository.Booking = (*memoryStore)(nil)

func newMemoryStore(room roomModel.Room) *memoryStore {
	return &memoryStore{room: room, bookings: map[string]model.Booking{}}
}

func (m *memoryStore) conflicts(roomID string, stay model.Stay) bool {
	for _, booking := range m.bookings {
		if booking.RoomID == roomID && booking.Status.BlocksRoom() && booking.Stay().Overlaps(stay) {
			return true
		}
	}

	return false
}

func (m *memoryStore) detail(booking model.Booking) model.BookingDetail {
	return model.BookingDetail{Booking: booking, RoomName: m.room.Name, RoomPrice: m.room.Price}
}

func (m *memoryStore) Create(_ context.Context, booking model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conflicts(booking.RoomID, booking.Stay()) {
		return repository.ErrRoomUnavailable
	}

	m.bookings[booking.ID] = booking

	return nil
}

func (m *memoryStore) HasConflict(_ context.Context, roomID string, stay model.Stay) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.conflicts(roomID, stay), nil
}

// Get understands the single id filter built by shared.FilterByID.
func (m *memoryStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, _ := filter.Filters[0].(gDto.Filter).Value.(string)

	booking, ok := m.bookings[id]
	if !ok {
		return model.BookingDetail{}, nil
	}

	return m.detail(booking), nil
}

func (m *memoryStore) GetAll(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	details := make([]model.BookingDetail, 0, len(m.bookings))
	for _, booking := range m.bookings {
		details = append(details, m.detail(booking))
	}

	return details, nil
}

func (m *memoryStore) Count(_ context.Context, _ gDto.FilterGroup) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.bookings), nil
}

func (m *memoryStore) FindByCode(_ context.Context, code string) (model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, booking := range m.bookings {
		if booking.Code() == repository.NormalizeCode(code) {
			return m.detail(booking), nil
		}
	}

	return model.BookingDetail{}, nil
}

func (m *memoryStore) Transition(_ context.Context, id string, from model.Status, mod map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}

	if status, ok := mod[model.FieldStatus].(model.Status); ok {
		booking.Status = status
	}

	if code, ok := mod[model.FieldVerificationCode].(string); ok {
		booking.VerificationCode = &code
	}

	if at, ok := mod[constant.FieldModifiedAt].(time.Time); ok {
		booking.ModifiedAt = at
	}

	m.bookings[id] = booking

	return true, nil
}

func (m *memoryStore) CheckIn(_ context.Context, id, operator string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[id]
	if !ok || booking.Status != model.StatusConfirmed || booking.CheckedInAt != nil {
		return false, nil
	}

	booking.CheckedInAt = &at
	booking.CheckedInBy = &operator
	m.bookings[id] = booking

	return true, nil
}

type harness struct {
	store        *memoryStore
	availability availabilityService.Availability
	bookings     service.Booking
}

func newHarness(t *testing.T, now time.Time) *harness {
	t.Helper()

	room := roomModel.Room{ID: gardenSuiteID, Name: "Garden Suite", Price: 40000, Capacity: 2, IsAvailable: true}

	rooms := roomMocks.NewMockRoom(gomock.NewController(t))
	rooms.EXPECT().FindByID(gomock.Any(), room.ID).Return(room, nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Notification.Driver = notification.DriverLog
	cfg.Notification.AdminEmail = "admin@hotel.test"
	cfg.Booking.VerificationCodeRetries = 3

	clock := timezone.FixedClock(now)
	store := newMemoryStore(room)
	availability := availabilityService.New(rooms, store, otelMocks.NewOtel(), clock)
	sender := notification.New(cfg, nil, otelMocks.NewOtel())

	return &harness{
		store:        store,
		availability: availability,
		bookings:     service.New(store, availability, sender, cfg, otelMocks.NewOtel(), clock, model.NewCodeGenerator()),
	}
}

func guestRequest(checkIn, checkOut string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:    gardenSuiteID,
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Phone:     "+1 555 0100",
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Adults:    1,
		Rooms:     1,
	}
}

func TestBookingLifecycle(t *testing.T) {
	h := newHarness(t, time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	before, err := h.availability.CheckAvailability(ctx, availabilityDto.CheckAvailabilityRequest{
		RoomID: gardenSuiteID, CheckIn: "2025-12-01", CheckOut: "2025-12-04",
	})
	require.NoError(t, err)
	assert.True(t, before.Available)
	assert.Equal(t, 3, before.Nights)
	assert.Equal(t, int64(120000), before.TotalPrice)

	created, err := h.bookings.Create(ctx, guestRequest("2025-12-01", "2025-12-04"))
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Booking.Status)
	assert.Equal(t, int64(120000), created.Booking.TotalAmount)
	assert.Empty(t, created.Warnings)

	confirmed, err := h.bookings.UpdateStatus(ctx, created.Booking.ID, dto.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Booking.Status)
	require.NotNil(t, confirmed.Booking.VerificationCode)
	assert.Regexp(t, `^[A-Z0-9]{8}$`, *confirmed.Booking.VerificationCode)

	_, err = h.bookings.UpdateStatus(ctx, created.Booking.ID, dto.UpdateStatusRequest{Status: "confirmed"})
	assert.Equal(t, failure.KindInvalidTransition, failure.GetKind(err))

	stored, err := h.bookings.Get(ctx, created.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, *confirmed.Booking.VerificationCode, *stored.VerificationCode)

	after, err := h.availability.CheckAvailability(ctx, availabilityDto.CheckAvailabilityRequest{
		RoomID: gardenSuiteID, CheckIn: "2025-12-02", CheckOut: "2025-12-03",
	})
	require.NoError(t, err)
	assert.False(t, after.Available)
	assert.Equal(t, availabilityDto.MsgDatesUnavailable, after.Message)

	turnover, err := h.availability.CheckAvailability(ctx, availabilityDto.CheckAvailabilityRequest{
		RoomID: gardenSuiteID, CheckIn: "2025-12-04", CheckOut: "2025-12-06",
	})
	require.NoError(t, err)
	assert.True(t, turnover.Available)

	_, err = h.bookings.UpdateStatus(ctx, created.Booking.ID, dto.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	released, err := h.availability.CheckAvailability(ctx, availabilityDto.CheckAvailabilityRequest{
		RoomID: gardenSuiteID, CheckIn: "2025-12-02", CheckOut: "2025-12-03",
	})
	require.NoError(t, err)
	assert.True(t, released.Available)
}

func TestBookingService_ConcurrentCreate(t *testing.T) {
	h := newHarness(t, time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC))

	const attempts = 8

	var (
		wg     sync.WaitGroup
		start  = make(chan struct{})
		errs   = make([]error, attempts)
		status = make([]string, attempts)
	)

	for i := range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()
			<-start

			res, err := h.bookings.Create(context.Background(), guestRequest("2025-12-10", "2025-12-14"))
			errs[i] = err
			status[i] = res.Booking.Status
		}()
	}

	close(start)
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		if err == nil {
			succeeded++
			assert.Equal(t, "pending", status[i])

			continue
		}

		assert.Equal(t, failure.KindRoomUnavailable, failure.GetKind(err))
	}

	assert.Equal(t, 1, succeeded)

	count, err := h.store.Count(context.Background(), gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
