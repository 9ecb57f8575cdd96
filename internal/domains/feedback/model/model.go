package model

import (
	"time"

	"libroom/shared/model"
)

const (
	TableName  = "feedbacks"
	EntityName = "feedback"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldUserEmail   = "user_email"
	FieldMessage     = "message"
	FieldRating      = "rating"
	FieldResponse    = "response"
	FieldRespondedBy = "responded_by"
	FieldAddressedAt = "addressed_at"
)

type Feedback struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	UserEmail   string     `db:"user_email"`
	Message     string     `db:"message"`
	Rating      int        `db:"rating"`
	Response    *string    `db:"response"`
	RespondedBy *string    `db:"responded_by"`
	AddressedAt *time.Time `db:"addressed_at"`
	model.Metadata
}
