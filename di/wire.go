//go:build wireinject
// +build wireinject

package di

import (
	"libroom/config"
	"libroom/infras/calendar"
	"libroom/infras/jwt"
	"libroom/infras/kafka"
	"libroom/infras/otel"
	"libroom/infras/postgres"
	"libroom/infras/redis"
	"libroom/infras/s3"
	"libroom/infras/telegram"
	"libroom/permissions"
	"libroom/shared/cache"
	"libroom/transport/http"
	"libroom/transport/http/middleware"
	"libroom/transport/http/router"

	announcementRepository "libroom/internal/domains/announcement/repository"
	announcementService "libroom/internal/domains/announcement/service"
	authService "libroom/internal/domains/auth/service"
	bookingRepository "libroom/internal/domains/booking/repository"
	bookingService "libroom/internal/domains/booking/service"
	feedbackRepository "libroom/internal/domains/feedback/repository"
	feedbackService "libroom/internal/domains/feedback/service"
	notificationRepository "libroom/internal/domains/notification/repository"
	notificationService "libroom/internal/domains/notification/service"
	roomRepository "libroom/internal/domains/room/repository"
	roomService "libroom/internal/domains/room/service"
	userRepository "libroom/internal/domains/user/repository"
	userService "libroom/internal/domains/user/service"

	announcementHandler "libroom/internal/handlers/announcement"
	authHandler "libroom/internal/handlers/auth"
	bookingHandler "libroom/internal/handlers/booking"
	feedbackHandler "libroom/internal/handlers/feedback"
	notificationHandler "libroom/internal/handlers/notification"
	roomHandler "libroom/internal/handlers/room"
	userHandler "libroom/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	telegram.New,
	calendar.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var announcementDomain = wire.NewSet(
	announcementRepository.New,
	announcementService.New,
)

var feedbackDomain = wire.NewSet(
	feedbackRepository.New,
	feedbackService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	roomDomain,
	announcementDomain,
	feedbackDomain,
	notificationDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	announcementHandler.New,
	feedbackHandler.New,
	notificationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
