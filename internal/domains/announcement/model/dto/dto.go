package dto

import (
	"github.com/google/uuid"
	"libroom/internal/domains/announcement/model"
	"libroom/shared"
	gDto "libroom/shared/dto"
	gModel "libroom/shared/model"
	"libroom/shared/timezone"
)

type CreateAnnouncementRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Body  string `json:"body" validate:"required"`
}

func (c *CreateAnnouncementRequest) ToModel(user string) model.Announcement {
	return model.Announcement{
		ID:     uuid.NewString(),
		Title:  c.Title,
		Body:   c.Body,
		Active: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateAnnouncementRequest struct {
	Title  string `db:"title" json:"title" validate:"omitempty,max=255"`
	Body   string `db:"body" json:"body" validate:"omitempty"`
	Active *bool  `db:"active" json:"active" validate:"omitempty"`
}

type AnnouncementResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Active bool   `json:"active"`
	gDto.Metadata
}

func (r *AnnouncementResponse) FromModel(model model.Announcement) {
	r.ID = model.ID
	r.Title = model.Title
	r.Body = model.Body
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetAnnouncementsResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetAnnouncementsResponse) FromModels(models []model.Announcement, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Announcements = make([]AnnouncementResponse, len(models))
	for i, mod := range models {
		r.Announcements[i].FromModel(mod)
	}
}
