package dto

import (
	"libroom/internal/domains/notification/model"
	"libroom/shared"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	gModel "libroom/shared/model"
	"libroom/shared/timezone"

	"github.com/google/uuid"
)

type CreateNotificationRequest struct {
	UserID    string  `json:"user_id" validate:"required"`
	BookingID *string `json:"booking_id"`
	Title     string  `json:"title" validate:"required,max=200"`
	Body      string  `json:"body"  validate:"required"`
}

func (r *CreateNotificationRequest) ToModel(actor string) model.Notification {
	return model.Notification{
		ID:        uuid.NewString(),
		UserID:    r.UserID,
		BookingID: r.BookingID,
		Title:     r.Title,
		Body:      r.Body,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type NotificationResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	BookingID *string `json:"booking_id,omitempty"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	ReadAt    *string `json:"read_at,omitempty"`
	gDto.Metadata
}

func (r *NotificationResponse) FromModel(mod model.Notification) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.BookingID = mod.BookingID
	r.Title = mod.Title
	r.Body = mod.Body

	if mod.ReadAt != nil {
		readAt := timezone.Format(*mod.ReadAt, constant.DateFormat)
		r.ReadAt = &readAt
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}
