package announcement

import (
	"net/http"

	"libroom/infras/otel"
	"libroom/internal/domains/announcement/model"
	"libroom/internal/domains/announcement/model/dto"
	"libroom/internal/domains/announcement/service"
	"libroom/shared"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	"libroom/shared/validator"
	"libroom/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Announcement
	otel    otel.Otel
}

func New(service service.Announcement, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/announcements", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAnnouncement)
		routerGroup.Get("/", handler.GetAnnouncements)
		routerGroup.Get("/{id}", handler.GetAnnouncementByID)
		routerGroup.Patch("/{id}", handler.UpdateAnnouncement)
		routerGroup.Delete("/{id}", handler.DeleteAnnouncement)
	})
}

// CreateAnnouncement posts a new announcement.
// @Summary Create a new announcement
// @Description Post a new announcement. New announcements start active.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param request body dto.CreateAnnouncementRequest true "Create Announcement Request"
// @Success 201 {object} response.Message "Announcement created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements [post]
// @Security BearerAuth
func (handler *Handler) CreateAnnouncement(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAnnouncement")
	defer scope.End()

	req := dto.CreateAnnouncementRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create announcement")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Announcement created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Announcement created successfully")
}

// GetAnnouncements retrieves announcements based on query parameters.
// @Summary Get all announcements
// @Description Retrieve announcements with optional filtering and pagination.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param title query string false "Filter by title"
// @Param active query boolean false "Filter by active state"
// @Success 200 {object} response.Data[dto.GetAnnouncementsResponse] "List of announcements"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements [get]
func (handler *Handler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAnnouncements")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	title := r.URL.Query().Get(model.FieldTitle)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTitle,
				Operator: gDto.FilterOperatorLike,
				Value:    title,
				Table:    model.TableName,
			},
		},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	announcements, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get announcements")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Announcements retrieved successfully")

	response.WithJSON(w, http.StatusOK, announcements)
}

// GetAnnouncementByID retrieves an announcement by its ID.
// @Summary Get an announcement by ID
// @Description Retrieve an announcement by its unique identifier.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} dto.AnnouncementResponse "Announcement details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements/{id} [get]
func (handler *Handler) GetAnnouncementByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAnnouncementByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	announcement, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get announcement by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Announcement retrieved successfully")

	response.WithJSON(w, http.StatusOK, announcement)
}

// UpdateAnnouncement edits or activates/deactivates an announcement.
// @Summary Update an announcement by ID
// @Description Edit the title or body of an announcement, or toggle its active state.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param request body dto.UpdateAnnouncementRequest true "Update Announcement Request"
// @Success 200 {object} response.Message "Announcement updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAnnouncement")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAnnouncementRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update announcement")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Announcement updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Announcement updated successfully")
}

// DeleteAnnouncement deletes an announcement by its ID.
// @Summary Delete an announcement by ID
// @Description Delete an announcement using its unique identifier.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Message "Announcement deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAnnouncement")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete announcement")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Announcement deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Announcement deleted successfully")
}
