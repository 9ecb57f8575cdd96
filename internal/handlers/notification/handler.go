package notification

import (
	"net/http"

	"libroom/infras/otel"
	"libroom/internal/domains/notification/model"
	"libroom/internal/domains/notification/service"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	"libroom/shared/failure"
	"libroom/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMyNotifications)
		routerGroup.Post("/read", handler.MarkAllRead)
		routerGroup.Post("/{id}/read", handler.MarkRead)
	})
}

// GetMyNotifications lists the caller's notifications.
// @Summary Get my notifications
// @Description Retrieve the notifications of the currently authenticated user, newest first.
// @Tags Notification
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetNotificationsResponse] "List of notifications"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications [get]
// @Security BearerAuth
func (handler *Handler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyNotifications")
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

	notifications, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notifications retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, notifications)
}

// MarkRead marks one of the caller's notifications as read.
// @Summary Mark a notification as read
// @Description Stamp the read time on a notification owned by the caller.
// @Tags Notification
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification marked as read"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/{id}/read [post]
// @Security BearerAuth
func (handler *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkRead")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkRead(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark notification read")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notification marked as read")

	response.WithMessage(w, http.StatusOK, "Notification marked as read")
}

// MarkAllRead marks every notification of the caller as read.
// @Summary Mark all notifications as read
// @Description Stamp the read time on every notification owned by the caller.
// @Tags Notification
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Notifications marked as read"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/read [post]
// @Security BearerAuth
func (handler *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkAllRead")
	defer scope.End()

	if err := handler.service.MarkAllRead(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark all notifications read")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("All notifications marked as read")

	response.WithMessage(w, http.StatusOK, "Notifications marked as read")
}
