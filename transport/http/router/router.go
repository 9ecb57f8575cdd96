package router

import (
	"libroom/internal/handlers/announcement"
	"libroom/internal/handlers/auth"
	"libroom/internal/handlers/booking"
	"libroom/internal/handlers/feedback"
	"libroom/internal/handlers/notification"
	"libroom/internal/handlers/room"
	"libroom/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Room         room.Handler
	Booking      booking.Handler
	Announcement announcement.Handler
	Feedback     feedback.Handler
	Notification notification.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Announcement.Router(routerGroup)
		r.DomainHandlers.Feedback.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
