package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"libroom/infras/otel"
	"libroom/infras/postgres"
	"libroom/internal/domains/feedback/model"
	gDto "libroom/shared/dto"
	gRepo "libroom/shared/repository"
)

type Feedback interface {
	Insert(ctx context.Context, model model.Feedback) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Feedback, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Feedback, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Feedback]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Feedback {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Feedback](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
