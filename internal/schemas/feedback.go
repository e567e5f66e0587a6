package schemas

import (
	"time"

	"feedbox/internal/models"
)

// FeedbackCreate is the body accepted when posting feedback. Rating is a
// pointer so that an explicit 0 is distinguishable from a missing field.
type FeedbackCreate struct {
	UserID   uint   `json:"user_id" validate:"required"`
	Rating   *int   `json:"rating" validate:"required,min=0,max=10"`
	Feedback string `json:"feedback" validate:"required,min=3"`
}

// FeedbackUpdate is a sparse patch; nil fields are left untouched.
type FeedbackUpdate struct {
	Rating   *int    `json:"rating" validate:"omitempty,min=0,max=10"`
	Feedback *string `json:"feedback" validate:"omitempty,min=3"`
}

// IsEmpty reports whether the patch carries no fields.
func (p FeedbackUpdate) IsEmpty() bool {
	return p.Rating == nil && p.Feedback == nil
}

// Apply copies the present fields onto f. DatePosted, UserID and ID are
// never touched.
func (p FeedbackUpdate) Apply(f *models.Feedback) {
	if p.Rating != nil {
		f.Rating = *p.Rating
	}
	if p.Feedback != nil {
		f.Feedback = *p.Feedback
	}
}

// FeedbackResponse is what clients receive for a feedback row.
type FeedbackResponse struct {
	ID         uint         `json:"id"`
	UserID     uint         `json:"user_id"`
	Rating     int          `json:"rating"`
	Feedback   string       `json:"feedback"`
	DatePosted time.Time    `json:"date_posted"`
	Author     UserResponse `json:"author"`
}

func NewFeedbackResponse(f *models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:         f.ID,
		UserID:     f.UserID,
		Rating:     f.Rating,
		Feedback:   f.Feedback,
		DatePosted: f.DatePosted.UTC(),
		Author:     NewUserResponse(&f.Author),
	}
}

func NewFeedbackResponses(feedbacks []models.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		out = append(out, NewFeedbackResponse(&feedbacks[i]))
	}
	return out
}
