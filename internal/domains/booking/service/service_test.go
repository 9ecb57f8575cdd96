package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"libroom/config"
	calendarMocks "libroom/infras/calendar/mocks"
	kafkaMocks "libroom/infras/kafka/mocks"
	"libroom/infras/otel/mocks"
	s3Mocks "libroom/infras/s3/mocks"
	telegramMocks "libroom/infras/telegram/mocks"
	bookingMocks "libroom/internal/domains/booking/mocks"
	"libroom/internal/domains/booking/model"
	"libroom/internal/domains/booking/model/dto"
	"libroom/internal/domains/booking/repository"
	"libroom/internal/domains/booking/service"
	notificationMocks "libroom/internal/domains/notification/mocks"
	roomMocks "libroom/internal/domains/room/mocks"
	roomModel "libroom/internal/domains/room/model"
	userMocks "libroom/internal/domains/user/mocks"
	userModel "libroom/internal/domains/user/model"
	cacheMocks "libroom/shared/cache/mocks"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	"libroom/shared/failure"
	gModel "libroom/shared/model"
	"libroom/shared/timezone"
)

type bookingFixture struct {
	repo     *bookingMocks.MockBooking
	roomRepo *roomMocks.MockRoom
	userRepo *userMocks.MockUser
	notif    *notificationMocks.MockNotification
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
	kafka    *kafkaMocks.MockClient
	telegram *telegramMocks.MockNotifier
	calendar *calendarMocks.MockCalendar
	svc      service.Booking
}

func newBookingFixture(t *testing.T, ctrl *gomock.Controller) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
		notif:    notificationMocks.NewMockNotification(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		telegram: telegramMocks.NewMockNotifier(ctrl),
		calendar: calendarMocks.NewMockCalendar(ctrl),
	}

	cfg := &config.Config{}
	cfg.Booking.TimeSlots = []string{"08:00-10:00", "10:00-12:00", "13:00-15:00"}
	cfg.Cache.TTL = 3600
	cfg.Kafka.BookingTopic = "booking-events"

	// The lifecycle operations fire cache invalidation, chat notifications and
	// event emission from goroutines; those collaborators are stubbed loosely
	// so scheduling never decides the test outcome.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.telegram.EXPECT().SendToAdmins(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.telegram.EXPECT().SendToChat(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(
		f.repo, f.roomRepo, f.userRepo, f.notif,
		cfg, f.cache, mocks.NewOtel(), f.s3, f.kafka, f.telegram, f.calendar,
	)

	return f
}

func userContext(userID, email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserEmail, email)
}

func activeRoom() roomModel.Room {
	return roomModel.Room{
		ID:       "room-1",
		Name:     "Discussion Room A",
		Location: "2nd floor",
		Capacity: 8,
		Active:   true,
	}
}

func pendingBooking() model.Booking {
	return model.Booking{
		ID:          "booking-1",
		UserID:      "user-1",
		UserEmail:   "user@example.com",
		RoomID:      "room-1",
		BookingDate: time.Date(2026, 3, 14, 0, 0, 0, 0, timezone.GetLocation()),
		TimeSlot:    "08:00-10:00",
		Status:      model.StatusPending,
		Violations:  []string{},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "user-1",
			ModifiedBy: "user-1",
		},
	}
}

func TestBookingService_Request(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	validReq := dto.RequestBookingRequest{
		RoomID:      "room-1",
		BookingDate: "2026-03-14",
		TimeSlot:    "08:00-10:00",
	}

	tests := []struct {
		name      string
		req       dto.RequestBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful request",
			req:  validReq,
			setupMock: func() {
				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeRoom(), nil)

				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "unknown time slot",
			req: dto.RequestBookingRequest{
				RoomID:      "room-1",
				BookingDate: "2026-03-14",
				TimeSlot:    "09:00-11:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "invalid date format",
			req: dto.RequestBookingRequest{
				RoomID:      "room-1",
				BookingDate: "14-03-2026",
				TimeSlot:    "08:00-10:00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "room does not exist",
			req:  validReq,
			setupMock: func() {
				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room not open for booking",
			req:  validReq,
			setupMock: func() {
				room := activeRoom()
				room.Active = false

				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "slot already booked",
			req:  validReq,
			setupMock: func() {
				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeRoom(), nil)

				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req:  validReq,
			setupMock: func() {
				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeRoom(), nil)

				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := userContext("user-1", "user@example.com")
			res, err := f.svc.Request(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, model.StatusPending, res.Status)
			}
		})
	}
}

// The availability check and the insert are separate store round trips with
// no lock between them. Two requests that both pass the check before either
// row lands are therefore both accepted; this pins that window down so a
// future constraint shows up as a deliberate behavior change.
func TestBookingService_RequestConflictWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	req := dto.RequestBookingRequest{
		RoomID:      "room-1",
		BookingDate: "2026-03-14",
		TimeSlot:    "08:00-10:00",
	}

	f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil).Times(2)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)

	var inserted []model.Booking
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking) error {
			inserted = append(inserted, booking)

			return nil
		}).Times(2)

	first, err := f.svc.Request(userContext("user-1", "user@example.com"), req)
	assert.NoError(t, err)

	second, err := f.svc.Request(userContext("user-2", "other@example.com"), req)
	assert.NoError(t, err)

	assert.Len(t, inserted, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, model.StatusPending, first.Status)
	assert.Equal(t, model.StatusPending, second.Status)
}

// Rejected and cancelled bookings free their slot: the availability check
// only counts pending and approved rows, and compares the date as a plain
// YYYY-MM-DD string.
func TestBookingService_RequestSlotOccupancy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	req := dto.RequestBookingRequest{
		RoomID:      "room-1",
		BookingDate: "2026-03-14",
		TimeSlot:    "08:00-10:00",
	}

	f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
			wantDate := time.Date(2026, 3, 14, 0, 0, 0, 0, timezone.GetLocation())
			assert.Equal(t, repository.SlotFilter("room-1", wantDate, "08:00-10:00"), filter)

			dateFilter, ok := filter.Filters[1].(gDto.Filter)
			assert.True(t, ok)
			assert.Equal(t, "2026-03-14", dateFilter.Value)

			statusFilter, ok := filter.Filters[3].(gDto.Filter)
			assert.True(t, ok)
			assert.Equal(t, model.FieldStatus, statusFilter.Field)
			assert.Equal(t, gDto.FilterOperatorIn, statusFilter.Operator)
			assert.Equal(t, []string{model.StatusPending, model.StatusApproved}, statusFilter.Value)

			return false, nil
		})
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Request(userContext("user-1", "user@example.com"), req)
	assert.NoError(t, err)
}

func TestBookingService_Approve(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(f *bookingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful approval",
			id:   "booking-1",
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "approving a rejected booking still succeeds",
			id:   "booking-1",
			setupMock: func(f *bookingFixture) {
				booking := pendingBooking()
				booking.Status = model.StatusRejected

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			id:   "missing",
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "update error",
			id:   "booking-1",
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newBookingFixture(t, ctrl)

			// The approval side effects (QR, PDF, calendar event, owner
			// notification) run asynchronously after the status flip, so their
			// collaborators are stubbed loosely.
			f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeRoom(), nil).AnyTimes()
			f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingOwner(), nil).AnyTimes()
			f.notif.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			f.s3.EXPECT().
				UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return("https://cdn.example.com/object", nil).
				AnyTimes()
			f.calendar.EXPECT().
				CreateEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return("event-1", nil).
				AnyTimes()

			tt.setupMock(f)

			ctx := userContext("admin-1", "admin@example.com")
			err := f.svc.Approve(ctx, tt.id, dto.ApproveBookingRequest{AdminMessage: "enjoy"})

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingOwner(), nil).AnyTimes()
	f.notif.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful rejection",
			id:   "booking-1",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			id:   "missing",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := userContext("admin-1", "admin@example.com")
			err := f.svc.Reject(ctx, tt.id, dto.RejectBookingRequest{Reason: "room under maintenance"})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "owner cancels own booking",
			userID: "user-1",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "non-owner is rejected",
			userID: "someone-else",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:   "booking not found",
			userID: "user-1",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := userContext(tt.userID, "user@example.com")
			err := f.svc.Cancel(ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	tests := []struct {
		name      string
		req       dto.CheckInRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful check-in",
			req:  dto.CheckInRequest{QRPayload: "payload-1"},
			setupMock: func() {
				booking := pendingBooking()
				booking.Status = model.StatusApproved

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "unknown QR payload",
			req:  dto.CheckInRequest{QRPayload: "bogus"},
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := userContext("admin-1", "admin@example.com")
			res, err := f.svc.CheckIn(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-1", res.ID)
			}
		})
	}
}

func TestBookingService_AddViolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	booking := pendingBooking()
	booking.Violations = []string{"left the room dirty"}

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(booking, nil)

	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	ctx := userContext("admin-1", "admin@example.com")
	err := f.svc.AddViolation(ctx, "booking-1", dto.AddViolationRequest{Note: "exceeded the time slot"})

	assert.NoError(t, err)
}

func TestBookingService_AvailableSlots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	tests := []struct {
		name      string
		date      string
		setupMock func()
		wantErr   bool
		wantSlots []string
	}{
		{
			name: "occupied slots removed in predefined order",
			date: "2026-03-14",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				occupied := pendingBooking()
				occupied.TimeSlot = "10:00-12:00"

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{occupied}, nil)
			},
			wantSlots: []string{"08:00-10:00", "13:00-15:00"},
		},
		{
			name: "fully free day returns every slot",
			date: "2026-03-15",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)
			},
			wantSlots: []string{"08:00-10:00", "10:00-12:00", "13:00-15:00"},
		},
		{
			name:      "invalid date",
			date:      "not-a-date",
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.AvailableSlots(context.Background(), "room-1", tt.date)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantSlots, res.Slots)
			}
		})
	}
}

func TestBookingService_Subscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	sub := f.svc.Subscribe(4)
	defer sub.Close()

	f.roomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(activeRoom(), nil)

	f.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	ctx := userContext("user-1", "user@example.com")
	res, err := f.svc.Request(ctx, dto.RequestBookingRequest{
		RoomID:      "room-1",
		BookingDate: "2026-03-14",
		TimeSlot:    "08:00-10:00",
	})
	assert.NoError(t, err)

	select {
	case event := <-sub.Events():
		assert.Equal(t, "booking.requested", event.Type)
		assert.Equal(t, res.ID, event.BookingID)
		assert.Equal(t, "room-1", event.RoomID)
	case <-time.After(time.Second):
		t.Fatal("expected a booking event, got none")
	}
}

func TestBookingService_SubscriptionClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(t, ctrl)

	sub := f.svc.Subscribe(1)

	sub.Close()
	sub.Close() // closing twice must be safe

	_, open := <-sub.Events()
	assert.False(t, open)
}

func bookingOwner() userModel.User {
	return userModel.User{
		ID:     "user-1",
		Email:  "user@example.com",
		Level:  constant.RoleUser,
		Active: true,
	}
}
