package model

import (
	"slices"
	"time"

	"libroom/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldUserEmail       = "user_email"
	FieldRoomID          = "room_id"
	FieldBookingDate     = "booking_date"
	FieldTimeSlot        = "time_slot"
	FieldStatus          = "status"
	FieldAdminID         = "admin_id"
	FieldAdminMessage    = "admin_message"
	FieldViolations      = "violations"
	FieldQRPayload       = "qr_payload"
	FieldQRURL           = "qr_url"
	FieldPDFURL          = "pdf_url"
	FieldCalendarEventID = "calendar_event_id"
	FieldCheckedInAt     = "checked_in_at"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// NonTerminalStatuses are the statuses that occupy a slot. Rejected and
// cancelled bookings do not count against availability.
var NonTerminalStatuses = []string{StatusPending, StatusApproved}

func IsValidStatus(status string) bool {
	return slices.Contains([]string{StatusPending, StatusApproved, StatusRejected, StatusCancelled}, status)
}

type Booking struct {
	ID              string         `db:"id"`
	UserID          string         `db:"user_id"`
	UserEmail       string         `db:"user_email"`
	RoomID          string         `db:"room_id"`
	BookingDate     time.Time      `db:"booking_date"`
	TimeSlot        string         `db:"time_slot"`
	Status          string         `db:"status"`
	AdminID         *string        `db:"admin_id"`
	AdminMessage    *string        `db:"admin_message"`
	Violations      pq.StringArray `db:"violations"`
	QRPayload       *string        `db:"qr_payload"`
	QRURL           *string        `db:"qr_url"`
	PDFURL          *string        `db:"pdf_url"`
	CalendarEventID *string        `db:"calendar_event_id"`
	CheckedInAt     *time.Time     `db:"checked_in_at"`
	model.Metadata
}
