package service

import (
	"context"
	"fmt"
	"libroom/config"
	"libroom/infras/otel"
	"libroom/internal/domains/feedback/model"
	"libroom/internal/domains/feedback/model/dto"
	"libroom/internal/domains/feedback/repository"
	"libroom/shared"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	"libroom/shared/failure"
	"libroom/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Feedback interface {
	Submit(ctx context.Context, req dto.SubmitFeedbackRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFeedbacksResponse, error)
	Get(ctx context.Context, id string) (dto.FeedbackResponse, error)
	Respond(ctx context.Context, id string, req dto.RespondFeedbackRequest) error
}

type serviceImpl struct {
	repo repository.Feedback
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Feedback, cfg *config.Config, otel otel.Otel) Feedback {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitFeedbackRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if err = s.repo.Insert(ctx, req.ToModel(userID, userEmail)); err != nil {
		log.Error().Err(err).Msg("failed to submit feedback")

		return fmt.Errorf("failed to submit feedback: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFeedbacksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count feedbacks")

		return res, fmt.Errorf("failed to count feedbacks: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedbacks")

		return res, fmt.Errorf("failed to get feedbacks: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	feedback, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, fmt.Errorf("failed to get feedback: %w", err)
	}

	if feedback.ID == "" {
		return res, failure.NotFound("feedback not found") // nolint:wrapcheck
	}

	res.FromModel(feedback)

	return res, nil
}

// Respond records an admin response and marks the feedback as addressed.
// Responding again overwrites the previous response.
func (s *serviceImpl) Respond(ctx context.Context, id string, req dto.RespondFeedbackRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Respond")
	defer scope.End()
	defer scope.TraceIfError(err)

	adminID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if feedback exists")

		return fmt.Errorf("failed to check if feedback exists: %w", err)
	}

	if !exist {
		log.Error().Msg("feedback not found")

		return failure.NotFound("feedback not found") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldResponse:      req.Response,
		model.FieldRespondedBy:   adminID,
		model.FieldAddressedAt:   timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: adminID,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to respond to feedback")

		return fmt.Errorf("failed to respond to feedback: %w", err)
	}

	return nil
}
