package dto

import (
	"fmt"
	"slices"
	"time"

	"libroom/config"
	"libroom/internal/domains/booking/model"
	"libroom/shared"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	gModel "libroom/shared/model"
	"libroom/shared/timezone"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// TimeSlot is a booking slot label, validated against the configured slot
// list through the libroom tag.
type TimeSlot string

func (t TimeSlot) Validate(cfg *config.Config) error {
	if slices.Contains(cfg.Booking.TimeSlots, string(t)) {
		return nil
	}

	return fmt.Errorf("unknown time slot %q", string(t))
}

type RequestBookingRequest struct {
	RoomID      string   `json:"room_id"      validate:"required"`
	BookingDate string   `json:"booking_date" validate:"required"`
	TimeSlot    TimeSlot `json:"time_slot"    validate:"required,libroom"`
}

// ParseDate normalizes the requested date to midnight in the application
// timezone. Any time-of-day component sent by the client is discarded.
func (r *RequestBookingRequest) ParseDate() (time.Time, error) {
	parsed, err := timezone.Parse(dateLayout, r.BookingDate)
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck
	}

	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, timezone.GetLocation()), nil
}

func (r *RequestBookingRequest) ToModel(userID, userEmail string, date time.Time) model.Booking {
	return model.Booking{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserEmail:   userEmail,
		RoomID:      r.RoomID,
		BookingDate: date,
		TimeSlot:    string(r.TimeSlot),
		Status:      model.StatusPending,
		Violations:  []string{},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type ApproveBookingRequest struct {
	AdminMessage string `json:"admin_message" validate:"omitempty,max=500"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type AddViolationRequest struct {
	Note string `json:"note" validate:"required,max=500"`
}

type CheckInRequest struct {
	QRPayload string `json:"qr_payload" validate:"required"`
}

type RequestBookingResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type BookingResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	UserEmail       string   `json:"user_email"`
	RoomID          string   `json:"room_id"`
	BookingDate     string   `json:"booking_date"`
	TimeSlot        string   `json:"time_slot"`
	Status          string   `json:"status"`
	AdminID         *string  `json:"admin_id,omitempty"`
	AdminMessage    *string  `json:"admin_message,omitempty"`
	Violations      []string `json:"violations"`
	QRURL           *string  `json:"qr_url,omitempty"`
	PDFURL          *string  `json:"pdf_url,omitempty"`
	CalendarEventID *string  `json:"calendar_event_id,omitempty"`
	CheckedInAt     *string  `json:"checked_in_at,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.UserEmail = mod.UserEmail
	r.RoomID = mod.RoomID
	r.BookingDate = mod.BookingDate.Format(dateLayout)
	r.TimeSlot = mod.TimeSlot
	r.Status = mod.Status
	r.AdminID = mod.AdminID
	r.AdminMessage = mod.AdminMessage
	r.Violations = mod.Violations
	r.QRURL = mod.QRURL
	r.PDFURL = mod.PDFURL
	r.CalendarEventID = mod.CalendarEventID

	if mod.CheckedInAt != nil {
		checkedIn := timezone.Format(*mod.CheckedInAt, constant.DateFormat)
		r.CheckedInAt = &checkedIn
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailableSlotsResponse struct {
	RoomID      string   `json:"room_id"`
	BookingDate string   `json:"booking_date"`
	Slots       []string `json:"slots"`
}
