package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/club-service/internal/events"
)

// StartAuditWorker subscribes to domain events and writes an audit
// trail through the structured logger.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	audit := logger.Named("audit")

	log := func(_ context.Context, event events.Event) error {
		audit.Info("domain event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("club_id", event.ClubID),
			zap.String("actor", event.Actor.Subject),
			zap.String("actor_role", string(event.Actor.Role)),
			zap.Time("timestamp", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventClubEventCreated,
		events.EventClubEventUpdated,
		events.EventClubEventDeleted,
		events.EventRegistrationSubmitted,
		events.EventRegistrationStatusChanged,
	} {
		dispatcher.Subscribe(eventType, log)
	}
}
