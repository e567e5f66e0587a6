package repositories

import (
	"context"

	"feedbox/internal/models"

	"gorm.io/gorm"
)

// GORMFeedbackRepository is a GORM implementation of FeedbackRepository.
type GORMFeedbackRepository struct {
	db *gorm.DB
}

// NewGORMFeedbackRepository creates a new instance of GORMFeedbackRepository.
func NewGORMFeedbackRepository(db *gorm.DB) *GORMFeedbackRepository {
	return &GORMFeedbackRepository{
		db: db,
	}
}

func (r *GORMFeedbackRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Author")
}

// Create inserts the feedback and loads its author.
func (r *GORMFeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(feedback).Error; err != nil {
		return translate(err, "failed to create feedback")
	}
	if err := r.withAuthor(ctx).First(feedback, "id = ?", feedback.ID).Error; err != nil {
		return translate(err, "failed to reload feedback %d", feedback.ID)
	}
	return nil
}

// GetAll retrieves all feedback in storage order.
func (r *GORMFeedbackRepository) GetAll(ctx context.Context) ([]models.Feedback, error) {
	feedbacks := []models.Feedback{}
	if err := r.withAuthor(ctx).Order("id").Find(&feedbacks).Error; err != nil {
		return nil, translate(err, "failed to get all feedbacks")
	}
	return feedbacks, nil
}

// FindByID returns every row matching id. The slice is empty, not an error,
// when nothing matches.
func (r *GORMFeedbackRepository) FindByID(ctx context.Context, id uint) ([]models.Feedback, error) {
	feedbacks := []models.Feedback{}
	if err := r.withAuthor(ctx).Where("id = ?", id).Find(&feedbacks).Error; err != nil {
		return nil, translate(err, "failed to find feedback %d", id)
	}
	return feedbacks, nil
}

// GetByID retrieves a single feedback by its ID.
func (r *GORMFeedbackRepository) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.withAuthor(ctx).First(&feedback, "id = ?", id).Error; err != nil {
		return nil, translate(err, "failed to get feedback by ID %d", id)
	}
	return &feedback, nil
}

// Update writes rating and text back to the row and reloads the author.
// DatePosted is create-only on the model and is never written here.
func (r *GORMFeedbackRepository) Update(ctx context.Context, feedback *models.Feedback) error {
	res := r.db.WithContext(ctx).Model(feedback).Select("rating", "feedback").Updates(feedback)
	if res.Error != nil {
		return translate(res.Error, "failed to update feedback %d", feedback.ID)
	}
	if err := r.withAuthor(ctx).First(feedback, "id = ?", feedback.ID).Error; err != nil {
		return translate(err, "failed to reload feedback %d", feedback.ID)
	}
	return nil
}

// Delete deletes a feedback by its ID.
func (r *GORMFeedbackRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Feedback{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete feedback %d", id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "feedback with ID %d not found for deletion", id)
	}
	return nil
}
