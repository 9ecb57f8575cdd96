package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"libroom/config"
	"libroom/infras/otel/mocks"
	notificationMocks "libroom/internal/domains/notification/mocks"
	"libroom/internal/domains/notification/model"
	"libroom/internal/domains/notification/model/dto"
	"libroom/internal/domains/notification/service"
	cacheMocks "libroom/shared/cache/mocks"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	"libroom/shared/failure"
	"libroom/shared/timezone"
)

type notificationFixture struct {
	repo  *notificationMocks.MockNotification
	cache *cacheMocks.MockRedisCache
	svc   service.Notification
}

func newNotificationFixture(t *testing.T, ctrl *gomock.Controller) *notificationFixture {
	t.Helper()

	f := &notificationFixture{
		repo:  notificationMocks.NewMockNotification(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidation happen from goroutines; stub them loosely
	// so scheduling never decides the test outcome.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func userContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func ownedNotification(userID string) model.Notification {
	return model.Notification{
		ID:     "notification-1",
		UserID: userID,
		Title:  "Booking approved",
		Body:   "Your booking for Discussion Room A has been approved",
	}
}

func TestNotificationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newNotificationFixture(t, ctrl)

	req := dto.CreateNotificationRequest{
		UserID: "user-1",
		Title:  "Booking approved",
		Body:   "Your booking for Discussion Room A has been approved",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successfully create notification",
			setupMock: func() {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "failed to insert notification",
			setupMock: func() {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Create(userContext("system"), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotificationService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newNotificationFixture(t, ctrl)

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "successfully get notifications on cache miss",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(2, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Notification{
					ownedNotification("user-1"),
					ownedNotification("user-1"),
				}, nil)
			},
			wantErr:   false,
			wantTotal: 2,
		},
		{
			name: "failed to count notifications",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(0, errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "failed to get notifications",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(2, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.GetAll(userContext("user-1"), params, filter)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
			assert.Len(t, res.Notifications, tt.wantTotal)
		})
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newNotificationFixture(t, ctrl)

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "successfully mark notification read",
			userID: "user-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedNotification("user-1"), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "marking an already read notification refreshes the timestamp",
			userID: "user-1",
			setupMock: func() {
				read := ownedNotification("user-1")
				readAt := timezone.Now()
				read.ReadAt = &readAt

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(read, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "notification not found",
			userID: "user-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Notification{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "notification belongs to another user",
			userID: "user-2",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedNotification("user-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:   "failed to get notification",
			userID: "user-1",
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Notification{}, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.MarkRead(userContext(tt.userID), "notification-1")

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newNotificationFixture(t, ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successfully mark all notifications read",
			setupMock: func() {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ map[string]any, filter gDto.FilterGroup) error {
						assert.Len(t, filter.Filters, 1)

						userFilter, ok := filter.Filters[0].(gDto.Filter)
						assert.True(t, ok)
						assert.Equal(t, model.FieldUserID, userFilter.Field)
						assert.Equal(t, "user-1", userFilter.Value)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "failed to mark all notifications read",
			setupMock: func() {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.MarkAllRead(userContext("user-1"))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
