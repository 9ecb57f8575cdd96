// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"libroom/config"
	"libroom/infras/calendar"
	"libroom/infras/jwt"
	"libroom/infras/kafka"
	"libroom/infras/otel"
	"libroom/infras/postgres"
	"libroom/infras/redis"
	"libroom/infras/s3"
	"libroom/infras/telegram"
	repository5 "libroom/internal/domains/announcement/repository"
	service5 "libroom/internal/domains/announcement/service"
	"libroom/internal/domains/auth/service"
	repository3 "libroom/internal/domains/booking/repository"
	service4 "libroom/internal/domains/booking/service"
	repository6 "libroom/internal/domains/feedback/repository"
	service6 "libroom/internal/domains/feedback/service"
	repository4 "libroom/internal/domains/notification/repository"
	service7 "libroom/internal/domains/notification/service"
	repository2 "libroom/internal/domains/room/repository"
	service3 "libroom/internal/domains/room/service"
	"libroom/internal/domains/user/repository"
	service2 "libroom/internal/domains/user/service"
	"libroom/internal/handlers/announcement"
	"libroom/internal/handlers/auth"
	"libroom/internal/handlers/booking"
	"libroom/internal/handlers/feedback"
	"libroom/internal/handlers/notification"
	"libroom/internal/handlers/room"
	"libroom/internal/handlers/user"
	"libroom/permissions"
	"libroom/shared/cache"
	"libroom/transport/http"
	"libroom/transport/http/middleware"
	"libroom/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceUser := service2.New(repositoryUser, configConfig, redisCache, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	repositoryRoom := repository2.New(connection, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceRoom := service3.New(repositoryRoom, configConfig, redisCache, otelOtel, s3S3)
	roomHandler := room.New(serviceRoom, otelOtel)
	repositoryBooking := repository3.New(connection, otelOtel)
	repositoryNotification := repository4.New(connection, otelOtel)
	kafkaClient := kafka.New(configConfig)
	notifier := telegram.New(configConfig, otelOtel)
	calendarCalendar := calendar.New(configConfig, otelOtel)
	serviceBooking := service4.New(repositoryBooking, repositoryRoom, repositoryUser, repositoryNotification, configConfig, redisCache, otelOtel, s3S3, kafkaClient, notifier, calendarCalendar)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	repositoryAnnouncement := repository5.New(connection, otelOtel)
	serviceAnnouncement := service5.New(repositoryAnnouncement, configConfig, otelOtel)
	announcementHandler := announcement.New(serviceAnnouncement, otelOtel)
	repositoryFeedback := repository6.New(connection, otelOtel)
	serviceFeedback := service6.New(repositoryFeedback, configConfig, otelOtel)
	feedbackHandler := feedback.New(serviceFeedback, otelOtel)
	serviceNotification := service7.New(repositoryNotification, configConfig, redisCache, otelOtel)
	notificationHandler := notification.New(serviceNotification, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:         handler,
		User:         userHandler,
		Room:         roomHandler,
		Booking:      bookingHandler,
		Announcement: announcementHandler,
		Feedback:     feedbackHandler,
		Notification: notificationHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, s3.New, kafka.New, telegram.New, calendar.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var bookingDomain = wire.NewSet(repository3.New, service4.New)

var roomDomain = wire.NewSet(repository2.New, service3.New)

var announcementDomain = wire.NewSet(repository5.New, service5.New)

var feedbackDomain = wire.NewSet(repository6.New, service6.New)

var notificationDomain = wire.NewSet(repository4.New, service7.New)

var authDomain = wire.NewSet(repository.New, service2.New, service.New)

var domains = wire.NewSet(
	bookingDomain,
	roomDomain,
	announcementDomain,
	feedbackDomain,
	notificationDomain,
	authDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, user.New, room.New, booking.New, announcement.New, feedback.New, notification.New, router.New)
