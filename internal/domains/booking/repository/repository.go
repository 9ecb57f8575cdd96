package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"libroom/infras/otel"
	"libroom/infras/postgres"
	"libroom/internal/domains/booking/model"
	gDto "libroom/shared/dto"
	gRepo "libroom/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SlotFilter matches bookings that occupy the given room/date/slot. Only
// pending and approved bookings count; rejected and cancelled ones free the
// slot again. The date is compared as a plain YYYY-MM-DD string so the DATE
// column match cannot shift with the session timezone.
func SlotFilter(roomID string, date time.Time, timeSlot string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date.Format(time.DateOnly),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldTimeSlot,
				Operator: gDto.FilterOperatorEq,
				Value:    timeSlot,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    model.NonTerminalStatuses,
				Table:    model.TableName,
			},
		},
	}
}

// DayFilter matches the non-terminal bookings of a room on a given date.
func DayFilter(roomID string, date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date.Format(time.DateOnly),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    model.NonTerminalStatuses,
				Table:    model.TableName,
			},
		},
	}
}
