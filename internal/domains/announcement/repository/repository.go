package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"libroom/infras/otel"
	"libroom/infras/postgres"
	"libroom/internal/domains/announcement/model"
	gDto "libroom/shared/dto"
	gRepo "libroom/shared/repository"
)

type Announcement interface {
	Insert(ctx context.Context, model model.Announcement) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Announcement, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Announcement, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Announcement]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Announcement {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Announcement](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
