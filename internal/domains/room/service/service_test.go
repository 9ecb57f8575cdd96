package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"libroom/config"
	"libroom/infras/otel/mocks"
	s3Mocks "libroom/infras/s3/mocks"
	roomMocks "libroom/internal/domains/room/mocks"
	"libroom/internal/domains/room/model"
	"libroom/internal/domains/room/model/dto"
	"libroom/internal/domains/room/service"
	cacheMocks "libroom/shared/cache/mocks"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	"libroom/shared/failure"
)

type roomFixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newRoomFixture(t *testing.T, ctrl *gomock.Controller) *roomFixture {
	t.Helper()

	f := &roomFixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "libroom"

	// Cache writes and invalidation happen from goroutines; stub them loosely
	// so scheduling never decides the test outcome.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func discussionRoom() model.Room {
	return model.Room{
		ID:        "room-1",
		Name:      "Discussion Room A",
		Location:  "2nd floor",
		Capacity:  8,
		Amenities: []string{"whiteboard", "projector"},
		Active:    true,
	}
}

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomFixture(t, ctrl)

	imageHeader := &multipart.FileHeader{Filename: "room.png"}

	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successfully create room without image",
			req: dto.CreateRoomRequest{
				Name:      "Discussion Room A",
				Location:  "2nd floor",
				Capacity:  8,
				Amenities: []string{"whiteboard"},
			},
			setupMock: func() {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, "Discussion Room A", room.Name)
						assert.True(t, room.Active)
						assert.Empty(t, room.Image)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "successfully create room with image",
			req: dto.CreateRoomRequest{
				Name:  "Discussion Room B",
				Image: imageHeader,
			},
			setupMock: func() {
				f.s3.EXPECT().UploadFile(gomock.Any(), "libroom", model.EntityName, gomock.Any(), imageHeader, gomock.Any()).
					Return("https://cdn.example.com/room/abc.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, "https://cdn.example.com/room/abc.png", room.Image)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "failed to upload image",
			req: dto.CreateRoomRequest{
				Name:  "Discussion Room B",
				Image: imageHeader,
			},
			setupMock: func() {
				f.s3.EXPECT().UploadFile(gomock.Any(), "libroom", model.EntityName, gomock.Any(), imageHeader, gomock.Any()).
					Return("", errors.New("s3 error"))
			},
			wantErr: true,
		},
		{
			name: "uploaded image is removed when insert fails",
			req: dto.CreateRoomRequest{
				Name:  "Discussion Room B",
				Image: imageHeader,
			},
			setupMock: func() {
				f.s3.EXPECT().UploadFile(gomock.Any(), "libroom", model.EntityName, gomock.Any(), imageHeader, gomock.Any()).
					Return("https://cdn.example.com/room/abc.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "libroom", model.EntityName, gomock.Any()).Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Create(adminContext(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomFixture(t, ctrl)

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "successfully get rooms on cache miss",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Room{discussionRoom()}, nil)
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "failed to count rooms",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), filter).Return(0, errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "failed to get rooms",
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
			assert.Len(t, res.Rooms, tt.wantTotal)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomFixture(t, ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successfully get room on cache miss",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(discussionRoom(), nil)
			},
			wantErr: false,
		},
		{
			name: "room not found",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "failed to get room",
			setupMock: func() {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Get(context.Background(), "room-1")

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, "room-1", res.ID)

				return
			}

			assert.Error(t, err)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomFixture(t, ctrl)

	capacity := 12
	req := dto.UpdateRoomRequest{Capacity: &capacity}
	imageHeader := &multipart.FileHeader{Filename: "room.jpg"}

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successfully update room",
			req:  req,
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(discussionRoom(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &capacity, fields[model.FieldCapacity])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "replacing the image deletes the old object",
			req:  dto.UpdateRoomRequest{Image: imageHeader},
			setupMock: func() {
				withImage := discussionRoom()
				withImage.Image = "https://cdn.example.com/room/old.png"

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(withImage, nil)
				f.s3.EXPECT().UploadFile(gomock.Any(), "libroom", model.EntityName, gomock.Any(), imageHeader, gomock.Any()).
					Return("https://cdn.example.com/room/new.jpg", nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().GetObjectNameFromURL("libroom", withImage.Image).Return("old.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "libroom", model.EntityName, "old.png").Return(nil)
			},
			wantErr: false,
		},
		{
			name: "room not found",
			req:  req,
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "failed to update room",
			req:  req,
			setupMock: func() {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(discussionRoom(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Update(adminContext(), tt.req, "room-1")

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

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newRoomFixture(t, ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successfully delete room",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "room not found",
			setupMock: func() {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "failed to delete room",
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

			err := f.svc.Delete(adminContext(), "room-1")

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
