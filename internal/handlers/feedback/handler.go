package feedback

import (
	"net/http"

	"libroom/infras/otel"
	"libroom/internal/domains/feedback/model"
	"libroom/internal/domains/feedback/model/dto"
	"libroom/internal/domains/feedback/service"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	"libroom/shared/failure"
	"libroom/shared/validator"
	"libroom/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Feedback
	otel    otel.Otel
}

func New(service service.Feedback, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/feedbacks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SubmitFeedback)
		routerGroup.Get("/", handler.GetFeedbacks)
		routerGroup.Get("/myfeedbacks", handler.GetMyFeedbacks)
		routerGroup.Get("/{id}", handler.GetFeedbackByID)
		routerGroup.Post("/{id}/respond", handler.RespondFeedback)
	})
}

// SubmitFeedback records feedback from the authenticated user.
// @Summary Submit feedback
// @Description Submit feedback about the service with a rating between 1 and 5.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.SubmitFeedbackRequest true "Submit Feedback Request"
// @Success 201 {object} response.Message "Feedback submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks [post]
// @Security BearerAuth
func (handler *Handler) SubmitFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitFeedback")
	defer scope.End()

	req := dto.SubmitFeedbackRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Submit(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit feedback")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Feedback submitted successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Feedback submitted successfully")
}

// GetFeedbacks retrieves all feedback entries.
// @Summary Get all feedback
// @Description Retrieve all feedback entries with optional pagination.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetFeedbacksResponse] "List of feedback entries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks [get]
// @Security BearerAuth
func (handler *Handler) GetFeedbacks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbacks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	feedbacks, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedbacks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Feedbacks retrieved successfully")

	response.WithJSON(w, http.StatusOK, feedbacks)
}

// GetMyFeedbacks retrieves the caller's feedback entries.
// @Summary Get my feedback
// @Description Retrieve the feedback entries submitted by the currently authenticated user.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetFeedbacksResponse] "List of the user's feedback entries"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks/myfeedbacks [get]
// @Security BearerAuth
func (handler *Handler) GetMyFeedbacks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyFeedbacks")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		scope.TraceError(nil)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	feedbacks, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user feedbacks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User feedbacks retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, feedbacks)
}

// GetFeedbackByID retrieves a feedback entry by its ID.
// @Summary Get feedback by ID
// @Description Retrieve a feedback entry by its unique identifier.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} dto.FeedbackResponse "Feedback details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFeedbackByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbackByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	feedback, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedback by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Feedback retrieved successfully")

	response.WithJSON(w, http.StatusOK, feedback)
}

// RespondFeedback records an admin response on a feedback entry.
// @Summary Respond to feedback
// @Description Record an admin response and mark the feedback entry as addressed.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param request body dto.RespondFeedbackRequest true "Respond Feedback Request"
// @Success 200 {object} response.Message "Feedback responded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks/{id}/respond [post]
// @Security BearerAuth
func (handler *Handler) RespondFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondFeedback")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RespondFeedbackRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Respond(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to respond to feedback")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Feedback responded successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Feedback responded successfully")
}
