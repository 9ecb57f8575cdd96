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
	userMocks "libroom/internal/domains/user/mocks"
	"libroom/internal/domains/user/model"
	"libroom/internal/domains/user/model/dto"
	"libroom/internal/domains/user/service"
	cacheMocks "libroom/shared/cache/mocks"
	gDto "libroom/shared/dto"
	"libroom/shared/failure"
	"libroom/shared/password"
)

type userFixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newUserFixture(t *testing.T, ctrl *gomock.Controller) *userFixture {
	t.Helper()

	f := &userFixture{
		repo:  userMocks.NewMockUser(ctrl),
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

func registeredUser() model.User {
	fullName := "Jane Librarian"

	return model.User{
		ID:       "user-1",
		Email:    "user@example.com",
		Level:    "user",
		FullName: &fullName,
		Active:   true,
	}
}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUserFixture(t, ctrl)

	req := dto.CreateUserRequest{
		Email:    "new@example.com",
		Password: "secret123",
		Level:    "admin",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successfully create user",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, req.Email, user.Email)
						assert.Equal(t, req.Level, user.Level)
						assert.NoError(t, password.Verify(req.Password, user.Password))

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "email already registered",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "failed to check if user exists",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "failed to insert user",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Create(context.Background(), req)

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

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUserFixture(t, ctrl)

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "successfully get users on cache miss",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.User{registeredUser()}, nil)
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "failed to count users",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(0, errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "failed to get users",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.GetAll(context.Background(), params, filter)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
			assert.Len(t, res.Users, tt.wantTotal)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUserFixture(t, ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successfully get user on cache miss",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(registeredUser(), nil)
			},
			wantErr: false,
		},
		{
			name: "user not found",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "failed to get user",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Get(context.Background(), "user-1")

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, "user-1", res.ID)

				return
			}

			assert.Error(t, err)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUserFixture(t, ctrl)

	level := "admin"
	req := dto.UpdateUserRequest{Level: &level}

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successfully update user",
			req:  req,
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &level, fields[model.FieldLevel])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			req:       dto.UpdateUserRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "user not found",
			req:  req,
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "failed to update user",
			req:  req,
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Update(context.Background(), tt.req, "user-1")

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

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newUserFixture(t, ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successfully delete user",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "user not found",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "failed to delete user",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Delete(context.Background(), "user-1")

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
