package events

import (
	"time"

	"github.com/spec-kit/club-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered            EventType = "user_registered"
	EventClubEventCreated          EventType = "club_event_created"
	EventClubEventUpdated          EventType = "club_event_updated"
	EventClubEventDeleted          EventType = "club_event_deleted"
	EventRegistrationSubmitted     EventType = "registration_submitted"
	EventRegistrationStatusChanged EventType = "registration_status_changed"
)

// Actor identifies who triggered an event. Empty subject means the
// action was anonymous or system-initiated.
type Actor struct {
	Subject string      `json:"subject,omitempty"`
	Role    domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ClubID    string      `json:"club_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// ClubEventPayload payload for event lifecycle changes.
type ClubEventPayload struct {
	EventID   int64  `json:"event_id"`
	EventName string `json:"event_name"`
}

// RegistrationSubmittedPayload payload.
type RegistrationSubmittedPayload struct {
	RegistrationID int64  `json:"registration_id"`
	Reference      string `json:"reference"`
	EventID        int64  `json:"event_id"`
	UserID         int64  `json:"user_id"`
}

// RegistrationStatusChangedPayload payload.
type RegistrationStatusChangedPayload struct {
	RegistrationID int64                     `json:"registration_id"`
	OldStatus      domain.RegistrationStatus `json:"old_status"`
	NewStatus      domain.RegistrationStatus `json:"new_status"`
}
