package dto

import (
	"libroom/internal/domains/feedback/model"
	"libroom/shared"
	"libroom/shared/constant"
	gDto "libroom/shared/dto"
	gModel "libroom/shared/model"
	"libroom/shared/timezone"

	"github.com/google/uuid"
)

type SubmitFeedbackRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

func (r *SubmitFeedbackRequest) ToModel(userID, userEmail string) model.Feedback {
	return model.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserEmail: userEmail,
		Message:   r.Message,
		Rating:    r.Rating,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type RespondFeedbackRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

type FeedbackResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserEmail   string  `json:"user_email"`
	Message     string  `json:"message"`
	Rating      int     `json:"rating"`
	Response    *string `json:"response,omitempty"`
	RespondedBy *string `json:"responded_by,omitempty"`
	AddressedAt *string `json:"addressed_at,omitempty"`
	gDto.Metadata
}

func (r *FeedbackResponse) FromModel(mod model.Feedback) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.UserEmail = mod.UserEmail
	r.Message = mod.Message
	r.Rating = mod.Rating
	r.Response = mod.Response
	r.RespondedBy = mod.RespondedBy

	if mod.AddressedAt != nil {
		addressedAt := timezone.Format(*mod.AddressedAt, constant.DateFormat)
		r.AddressedAt = &addressedAt
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetFeedbacksResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetFeedbacksResponse) FromModels(models []model.Feedback, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Feedbacks = make([]FeedbackResponse, len(models))
	for i, mod := range models {
		r.Feedbacks[i].FromModel(mod)
	}
}
