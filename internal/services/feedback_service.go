package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedbox/internal/models"
	"feedbox/internal/repositories"
	"feedbox/internal/schemas"
	"feedbox/pkg/rabbitmq"

	"go.uber.org/zap"
)

// FeedbackService implements the feedback operations. Each call runs in one
// transaction.
type FeedbackService struct {
	store  repositories.Store
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

// NewFeedbackService creates a new FeedbackService. events may be nil.
func NewFeedbackService(store repositories.Store, events EventPublisher, log *zap.Logger) *FeedbackService {
	return &FeedbackService{
		store:  store,
		events: events,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateFeedback stores a new feedback for an existing user and returns it
// with its author.
func (s *FeedbackService) CreateFeedback(ctx context.Context, in schemas.FeedbackCreate) (*models.Feedback, error) {
	if err := schemas.Validate(in); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		Rating:   *in.Rating,
		Feedback: in.Feedback,
		UserID:   in.UserID,
	}
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().GetByID(ctx, in.UserID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		feedback.DatePosted = s.now()
		return tx.Feedbacks().Create(ctx, feedback)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("feedback created", zap.Uint("id", feedback.ID), zap.Uint("user_id", feedback.UserID))
	publish(s.events, s.log, rabbitmq.FeedbackCreated, feedback)
	return feedback, nil
}

// ListFeedbacks returns every feedback with its author.
func (s *FeedbackService) ListFeedbacks(ctx context.Context) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		feedbacks, err = tx.Feedbacks().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// GetFeedback returns the rows matching id, or ErrPostNotFound when none do.
func (s *FeedbackService) GetFeedback(ctx context.Context, id uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		feedbacks, err = tx.Feedbacks().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(feedbacks) == 0 {
		return nil, ErrPostNotFound
	}
	return feedbacks, nil
}

// UpdateFeedbackPartial applies only the fields present in patch. An empty
// patch returns the row unchanged.
func (s *FeedbackService) UpdateFeedbackPartial(ctx context.Context, id uint, patch schemas.FeedbackUpdate) (*models.Feedback, error) {
	if err := schemas.Validate(patch); err != nil {
		return nil, err
	}

	var feedback *models.Feedback
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		feedback, err = tx.Feedbacks().GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		patch.Apply(feedback)
		return tx.Feedbacks().Update(ctx, feedback)
	})
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		s.log.Info("feedback updated", zap.Uint("id", feedback.ID))
		publish(s.events, s.log, rabbitmq.FeedbackUpdated, feedback)
	}
	return feedback, nil
}

// DeleteFeedback removes a feedback on behalf of the user owning
// requesterEmail, who must be an admin.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, requesterEmail string, id uint) error {
	var feedback *models.Feedback
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := authorizeAdmin(ctx, tx, requesterEmail); err != nil {
			return err
		}

		var err error
		feedback, err = tx.Feedbacks().GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		if err != nil {
			return err
		}
		return tx.Feedbacks().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("feedback deleted", zap.Uint("id", id), zap.String("by", requesterEmail))
	publish(s.events, s.log, rabbitmq.FeedbackDeleted, feedback)
	return nil
}

// authorizeAdmin resolves the requester by email and checks the admin role.
func authorizeAdmin(ctx context.Context, tx repositories.Store, email string) error {
	if email == "" {
		return ErrUnauthorized
	}
	requester, err := tx.Users().GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("failed to resolve requester: %w", err)
	}
	if !requester.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
