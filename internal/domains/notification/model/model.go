package model

import (
	"time"

	"libroom/shared/model"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldBookingID = "booking_id"
	FieldTitle     = "title"
	FieldBody      = "body"
	FieldReadAt    = "read_at"
)

type Notification struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	BookingID *string    `db:"booking_id"`
	Title     string     `db:"title"`
	Body      string     `db:"body"`
	ReadAt    *time.Time `db:"read_at"`
	model.Metadata
}
