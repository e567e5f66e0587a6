package services

import (
	"time"

	"feedbox/internal/models"
	"feedbox/pkg/rabbitmq"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher delivers feedback lifecycle events. *rabbitmq.Client
// satisfies it.
type EventPublisher interface {
	Publish(ev rabbitmq.Event) error
}

// publish sends an event for f after its transaction committed. Failures are
// logged and never surface to the caller.
func publish(events EventPublisher, log *zap.Logger, kind string, f *models.Feedback) {
	if events == nil {
		return
	}
	ev := rabbitmq.Event{
		ID:         uuid.NewString(),
		Type:       kind,
		FeedbackID: f.ID,
		UserID:     f.UserID,
		Rating:     f.Rating,
		OccurredAt: time.Now().UTC(),
	}
	if err := events.Publish(ev); err != nil {
		log.Warn("failed to publish event",
			zap.String("type", kind),
			zap.Uint("feedback_id", f.ID),
			zap.Error(err))
	}
}
