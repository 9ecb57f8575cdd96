package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"libroom/internal/domains/booking/model"
	notificationDto "libroom/internal/domains/notification/model/dto"
	roomModel "libroom/internal/domains/room/model"
	userModel "libroom/internal/domains/user/model"
	"libroom/shared"
	"libroom/shared/constant"
	"libroom/shared/pdf"
	"libroom/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/yeqown/go-qrcode"
)

const (
	qrDirectory  = "bookings/qr"
	pdfDirectory = "bookings/pdf"
)

type statusUpdate struct {
	Status       string `db:"status"`
	AdminID      string `db:"admin_id"`
	AdminMessage string `db:"admin_message"`
}

type checkInUpdate struct {
	CheckedInAt time.Time `db:"checked_in_at"`
}

type violationUpdate struct {
	Violations pq.StringArray `db:"violations"`
}

func approvalText(booking model.Booking, adminMessage string) string {
	text := fmt.Sprintf("Your booking for %s (%s) was approved.",
		booking.BookingDate.Format("2006-01-02"), booking.TimeSlot)

	if adminMessage != constant.Empty {
		text += " " + adminMessage
	}

	return text
}

// parseSlot resolves a "HH:MM-HH:MM" slot label into concrete start and end
// times on the booking date, in the application timezone.
func parseSlot(date time.Time, slot string) (start, end time.Time, err error) {
	parts := strings.SplitN(slot, "-", 2)
	if len(parts) != 2 {
		return start, end, fmt.Errorf("malformed slot label %q", slot)
	}

	startClock, err := time.Parse("15:04", parts[0])
	if err != nil {
		return start, end, fmt.Errorf("malformed slot start %q: %w", parts[0], err)
	}

	endClock, err := time.Parse("15:04", parts[1])
	if err != nil {
		return start, end, fmt.Errorf("malformed slot end %q: %w", parts[1], err)
	}

	loc := timezone.GetLocation()
	start = time.Date(date.Year(), date.Month(), date.Day(), startClock.Hour(), startClock.Minute(), 0, 0, loc)
	end = time.Date(date.Year(), date.Month(), date.Day(), endClock.Hour(), endClock.Minute(), 0, 0, loc)

	return start, end, nil
}

// attachApprovalArtifacts generates the check-in QR code, the confirmation
// document, and the calendar event for an approved booking, then stamps their
// references on the booking row. Each artifact is best effort: a failure is
// logged and the remaining artifacts are still attempted.
func (s *serviceImpl) attachApprovalArtifacts(ctx context.Context, booking model.Booking, adminMessage string) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to load room for approval artifacts")
	}

	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
	}

	if payload, url, err := s.generateQR(ctx, booking); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to generate check-in QR code")
	} else {
		fields[model.FieldQRPayload] = payload
		fields[model.FieldQRURL] = url
	}

	if url, err := s.generatePDF(ctx, booking, room.Name, adminMessage); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to generate confirmation document")
	} else {
		fields[model.FieldPDFURL] = url
	}

	if eventID, err := s.createCalendarEvent(ctx, booking, room.Name); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to create calendar event")
	} else if eventID != constant.Empty {
		fields[model.FieldCalendarEventID] = eventID
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to attach approval artifacts")
	}
}

func (s *serviceImpl) generateQR(ctx context.Context, booking model.Booking) (payload, url string, err error) {
	payload = uuid.NewString()

	qrc, err := qrcode.New(payload)
	if err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to encode QR code: %w", err)
	}

	var buf bytes.Buffer
	if err = qrc.SaveTo(&buf); err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to render QR code: %w", err)
	}

	url, err = s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, qrDirectory, booking.ID+".jpeg", "image/jpeg", buf.Bytes())
	if err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload QR code: %w", err)
	}

	return payload, url, nil
}

func (s *serviceImpl) generatePDF(ctx context.Context, booking model.Booking, roomName, adminMessage string) (url string, err error) {
	document, err := pdf.RenderConfirmation(pdf.Confirmation{
		BookingID:   booking.ID,
		RoomName:    roomName,
		BookingDate: booking.BookingDate.Format("2006-01-02"),
		TimeSlot:    booking.TimeSlot,
		UserEmail:   booking.UserEmail,
		Message:     adminMessage,
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to render confirmation document: %w", err)
	}

	url, err = s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, pdfDirectory, booking.ID+".pdf", "application/pdf", document)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload confirmation document: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) createCalendarEvent(ctx context.Context, booking model.Booking, roomName string) (eventID string, err error) {
	start, end, err := parseSlot(booking.BookingDate, booking.TimeSlot)
	if err != nil {
		return constant.Empty, err
	}

	summary := fmt.Sprintf("Room booking: %s", roomName)
	description := fmt.Sprintf("Booked by %s (booking %s)", booking.UserEmail, booking.ID)

	return s.calendar.CreateEvent(ctx, summary, description, start, end)
}

// notifyOwner records an in-app notification for the booking owner and, when
// the owner has linked a chat channel, pushes the message there too. Failures
// are logged and swallowed.
func (s *serviceImpl) notifyOwner(ctx context.Context, booking model.Booking, title, body string) {
	req := notificationDto.CreateNotificationRequest{
		UserID:    booking.UserID,
		BookingID: &booking.ID,
		Title:     title,
		Body:      body,
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := s.notifRepo.Insert(ctx, req.ToModel(actor)); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to record notification")
	}

	owner, err := s.userRepo.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to load booking owner for notification")

		return
	}

	if owner.TelegramChatID == nil {
		return
	}

	if err := s.notifier.SendToChat(ctx, *owner.TelegramChatID, body); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to send chat notification")
	}
}
