package calendar

//go:generate go run go.uber.org/mock/mockgen -source=./calendar.go -destination=./mocks/calendar_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"libroom/config"
	"libroom/infras/otel"
	"libroom/shared/constant"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Calendar creates events on the configured external calendar. Calls are
// fire-once; callers treat failures as a logged side effect, never as a
// failure of the booking operation that triggered them.
type Calendar interface {
	CreateEvent(ctx context.Context, summary, description string, start, end time.Time) (eventID string, err error)
	DeleteEvent(ctx context.Context, eventID string) error
}

type calendarImpl struct {
	service *gcalendar.Service
	cfg     *config.Config
	otel    otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Calendar {
	if !cfg.External.Calendar.Enable {
		log.Info().Msg("Calendar sync disabled")

		return &noopCalendar{}
	}

	service, err := newService(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize calendar client, calendar sync disabled")

		return &noopCalendar{}
	}

	log.Info().Str("calendar", cfg.External.Calendar.CalendarID).Msg("Calendar client initialized")

	return &calendarImpl{
		service: service,
		cfg:     cfg,
		otel:    ot,
	}
}

func newService(cfg *config.Config) (*gcalendar.Service, error) {
	credentials, err := os.ReadFile(cfg.External.Calendar.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar credentials: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(credentials, gcalendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar credentials: %w", err)
	}

	tokenFile, err := os.Open(cfg.External.Calendar.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar token: %w", err)
	}
	defer tokenFile.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(tokenFile).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode calendar token: %w", err)
	}

	service, err := gcalendar.NewService(
		context.Background(),
		option.WithTokenSource(oauthConfig.TokenSource(context.Background(), token)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return service, nil
}

func (c *calendarImpl) CreateEvent(ctx context.Context, summary, description string, start, end time.Time) (eventID string, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".calendar.CreateEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	event := &gcalendar.Event{
		Summary:     summary,
		Description: description,
		Start:       &gcalendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &gcalendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}

	created, err := c.service.Events.Insert(c.cfg.External.Calendar.CalendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}

	return created.Id, nil
}

func (c *calendarImpl) DeleteEvent(ctx context.Context, eventID string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".calendar.DeleteEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.service.Events.Delete(c.cfg.External.Calendar.CalendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}

	return nil
}

type noopCalendar struct{}

func (c *noopCalendar) CreateEvent(_ context.Context, _, _ string, _, _ time.Time) (string, error) {
	return "", nil
}

func (c *noopCalendar) DeleteEvent(_ context.Context, _ string) error { return nil }
