package service

import (
	"context"
	"fmt"
	"libroom/config"
	"libroom/infras/otel"
	"libroom/internal/domains/announcement/model"
	"libroom/internal/domains/announcement/model/dto"
	"libroom/internal/domains/announcement/repository"
	"libroom/shared"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	"libroom/shared/failure"

	"github.com/rs/zerolog/log"
)

type Announcement interface {
	Create(ctx context.Context, req dto.CreateAnnouncementRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAnnouncementsResponse, error)
	Get(ctx context.Context, id string) (dto.AnnouncementResponse, error)
	Update(ctx context.Context, req dto.UpdateAnnouncementRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Announcement
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Announcement, cfg *config.Config, otel otel.Otel) Announcement {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAnnouncementRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create announcement")

		return fmt.Errorf("failed to create announcement: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAnnouncementsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count announcements")

		return res, fmt.Errorf("failed to count announcements: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get announcements")

		return res, fmt.Errorf("failed to get announcements: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AnnouncementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	announcement, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get announcement")

		return res, fmt.Errorf("failed to get announcement: %w", err)
	}

	if announcement.ID == "" {
		return res, failure.NotFound("announcement not found") // nolint:wrapcheck
	}

	res.FromModel(announcement)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAnnouncementRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateAnnouncementRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if announcement exists")

		return fmt.Errorf("failed to check if announcement exists: %w", err)
	}

	if !exist {
		log.Error().Msg("announcement not found")

		return failure.NotFound("announcement not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update announcement")

		return fmt.Errorf("failed to update announcement: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if announcement exists")

		return fmt.Errorf("failed to check if announcement exists: %w", err)
	}

	if !exist {
		log.Error().Msg("announcement not found")

		return failure.NotFound("announcement not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete announcement")

		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	return nil
}
