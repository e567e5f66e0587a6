package repositories

import (
	"context"

	"feedbox/internal/models"
)

// FeedbackRepository defines the interface for feedback data access. Every
// read returns rows with Author populated.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetAll(ctx context.Context) ([]models.Feedback, error)
	FindByID(ctx context.Context, id uint) ([]models.Feedback, error)
	GetByID(ctx context.Context, id uint) (*models.Feedback, error)
	Update(ctx context.Context, feedback *models.Feedback) error
	Delete(ctx context.Context, id uint) error
}
