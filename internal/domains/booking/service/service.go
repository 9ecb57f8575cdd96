package service

import (
	"context"
	"fmt"
	"slices"

	"libroom/config"
	"libroom/infras/calendar"
	"libroom/infras/kafka"
	"libroom/infras/otel"
	"libroom/infras/s3"
	"libroom/infras/telegram"
	"libroom/internal/domains/booking/model"
	"libroom/internal/domains/booking/model/dto"
	"libroom/internal/domains/booking/repository"
	notificationRepo "libroom/internal/domains/notification/repository"
	roomModel "libroom/internal/domains/room/model"
	roomRepo "libroom/internal/domains/room/repository"
	userRepo "libroom/internal/domains/user/repository"
	"libroom/shared"
	"libroom/shared/cache"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	"libroom/shared/failure"
	"libroom/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheSlots         = "booking:slots"
)

type Booking interface {
	Request(ctx context.Context, req dto.RequestBookingRequest) (dto.RequestBookingResponse, error)
	Approve(ctx context.Context, id string, req dto.ApproveBookingRequest) error
	Reject(ctx context.Context, id string, req dto.RejectBookingRequest) error
	Cancel(ctx context.Context, id string) error
	CheckIn(ctx context.Context, req dto.CheckInRequest) (dto.BookingResponse, error)
	AddViolation(ctx context.Context, id string, req dto.AddViolationRequest) error
	AvailableSlots(ctx context.Context, roomID, date string) (dto.AvailableSlotsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Subscribe(buffer int) *Subscription
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	userRepo  userRepo.User
	notifRepo notificationRepo.Notification
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
	kafka     kafka.Client
	notifier  telegram.Notifier
	calendar  calendar.Calendar
	broker    *eventBroker
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	notifRepo notificationRepo.Notification,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	kafkaClient kafka.Client,
	notifier telegram.Notifier,
	cal calendar.Calendar,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		userRepo:  userRepo,
		notifRepo: notifRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
		kafka:     kafkaClient,
		notifier:  notifier,
		calendar:  cal,
		broker:    newEventBroker(),
	}
}

// Subscribe registers a listener on booking lifecycle events. The returned
// subscription must be closed by the caller when no longer needed.
func (s *serviceImpl) Subscribe(buffer int) *Subscription {
	return s.broker.subscribe(buffer)
}

// Request creates a pending booking after checking the slot is free. The
// check and the insert are two separate store round trips with no lock or
// unique constraint between them, so two concurrent requests that both pass
// the check will both be accepted. See the conflict-handling notes in
// DESIGN.md before attempting to close that window.
func (s *serviceImpl) Request(ctx context.Context, req dto.RequestBookingRequest) (res dto.RequestBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	userEmail, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if !slices.Contains(s.cfg.Booking.TimeSlots, string(req.TimeSlot)) {
		return res, failure.BadRequestFromString("unknown time slot") //nolint:wrapcheck
	}

	date, err := req.ParseDate()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking date")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up room")

		return res, fmt.Errorf("failed to look up room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.BadRequestFromString("room does not exist") //nolint:wrapcheck
	}

	if !room.Active {
		return res, failure.BadRequestFromString("room is not open for booking") //nolint:wrapcheck
	}

	taken, err := s.repo.Exist(ctx, repository.SlotFilter(req.RoomID, date, string(req.TimeSlot)))
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot availability")

		return res, fmt.Errorf("failed to check slot availability: %w", err)
	}

	if taken {
		return res, failure.Conflict("time slot is already booked for this room") //nolint:wrapcheck
	}

	booking := req.ToModel(userID, userEmail, date)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.emit(ctx, Event{
		Type:      EventRequested,
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		UserID:    booking.UserID,
		Status:    booking.Status,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		text := fmt.Sprintf(
			"New booking request: %s on %s (%s) by %s",
			room.Name, req.BookingDate, req.TimeSlot, userEmail,
		)
		if err := s.notifier.SendToAdmins(c, text); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to notify admins of new booking")
		}

		s.invalidate(c, booking.ID)
	}()

	res.ID = booking.ID
	res.Status = booking.Status

	return res, nil
}

// Approve flips a booking to approved. Matching the original behavior, there
// is no guard on the current status: approving a rejected or cancelled
// booking succeeds and overwrites its state.
func (s *serviceImpl) Approve(ctx context.Context, id string, req dto.ApproveBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	adminID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getExisting(ctx, id)
	if err != nil {
		return err
	}

	fields := shared.TransformFields(statusUpdate{
		Status:       model.StatusApproved,
		AdminID:      adminID,
		AdminMessage: req.AdminMessage,
	}, adminID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to approve booking")

		return fmt.Errorf("failed to approve booking: %w", err)
	}

	s.emit(ctx, Event{
		Type:      EventApproved,
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		UserID:    booking.UserID,
		Status:    model.StatusApproved,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		s.attachApprovalArtifacts(c, booking, req.AdminMessage)
		s.notifyOwner(c, booking, "Your booking was approved", approvalText(booking, req.AdminMessage))
		s.invalidate(c, id)
	}()

	return nil
}

// Reject flips a booking to rejected. The reason is stored in the same field
// as the approval message. No prior-status guard, same as Approve.
func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	adminID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getExisting(ctx, id)
	if err != nil {
		return err
	}

	fields := shared.TransformFields(statusUpdate{
		Status:       model.StatusRejected,
		AdminID:      adminID,
		AdminMessage: req.Reason,
	}, adminID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to reject booking")

		return fmt.Errorf("failed to reject booking: %w", err)
	}

	s.emit(ctx, Event{
		Type:      EventRejected,
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		UserID:    booking.UserID,
		Status:    model.StatusRejected,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		text := fmt.Sprintf("Your booking for %s (%s) was rejected: %s",
			booking.BookingDate.Format("2006-01-02"), booking.TimeSlot, req.Reason)
		s.notifyOwner(c, booking, "Your booking was rejected", text)
		s.invalidate(c, id)
	}()

	return nil
}

// Cancel sets a booking to cancelled. Only the owning user may cancel; there
// is no admin bypass here. Cancelling an already terminal booking still
// succeeds and re-stamps modified_at.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getExisting(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != userID {
		return failure.Forbidden("only the booking owner can cancel it") //nolint:wrapcheck
	}

	fields := shared.TransformFields(statusUpdate{Status: model.StatusCancelled}, userID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.emit(ctx, Event{
		Type:      EventCancelled,
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		UserID:    booking.UserID,
		Status:    model.StatusCancelled,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return nil
}

// CheckIn resolves a scanned QR payload to its booking and stamps the
// check-in time.
func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	adminID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldQRPayload,
				Operator: gDto.FilterOperatorEq,
				Value:    req.QRPayload,
				Table:    model.TableName,
			},
		},
	}

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up booking by QR payload")

		return res, fmt.Errorf("failed to look up booking by QR payload: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("no booking matches this QR code") //nolint:wrapcheck
	}

	fields := shared.TransformFields(checkInUpdate{CheckedInAt: timezone.Now()}, adminID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to record check-in")

		return res, fmt.Errorf("failed to record check-in: %w", err)
	}

	s.emit(ctx, Event{
		Type:      EventCheckedIn,
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		UserID:    booking.UserID,
		Status:    booking.Status,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, booking.ID)
	}()

	res.FromModel(booking)

	return res, nil
}

// AddViolation appends an admin note to the booking's violation list.
func (s *serviceImpl) AddViolation(ctx context.Context, id string, req dto.AddViolationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddViolation")
	defer scope.End()
	defer scope.TraceIfError(err)

	adminID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getExisting(ctx, id)
	if err != nil {
		return err
	}

	violations := append(booking.Violations, req.Note)

	fields := shared.TransformFields(violationUpdate{Violations: violations}, adminID)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to add violation note")

		return fmt.Errorf("failed to add violation note: %w", err)
	}

	s.emit(ctx, Event{
		Type:      EventViolation,
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		UserID:    booking.UserID,
		Status:    booking.Status,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return nil
}

// AvailableSlots returns the predefined slot labels minus those occupied by
// pending or approved bookings, preserving the predefined order. This is a
// derived read: it does not reserve anything, and two callers can both see
// the same slot as free.
func (s *serviceImpl) AvailableSlots(ctx context.Context, roomID, date string) (res dto.AvailableSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	req := dto.RequestBookingRequest{BookingDate: date}

	day, err := req.ParseDate()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse date for slot listing")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheSlots, roomID, day.Format("2006-01-02"))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for available slots")

		return res, nil
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, repository.DayFilter(roomID, day))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for slot listing")

		return res, fmt.Errorf("failed to get bookings for slot listing: %w", err)
	}

	occupied := make(map[string]bool, len(bookings))
	for _, booking := range bookings {
		occupied[booking.TimeSlot] = true
	}

	available := []string{}
	for _, slot := range s.cfg.Booking.TimeSlots {
		if !occupied[slot] {
			available = append(available, slot)
		}
	}

	res.RoomID = roomID
	res.BookingDate = day.Format("2006-01-02")
	res.Slots = available

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save available slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getExisting(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getExisting(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheSlots)
}
