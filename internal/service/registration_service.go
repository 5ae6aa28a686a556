package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/club-service/internal/auth"
	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/events"
	"github.com/spec-kit/club-service/internal/repository"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// RegistrationService coordinates event application workflows.
type RegistrationService struct {
	registrations repository.RegistrationRepository
	eventsRepo    repository.EventRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
}

// RegistrationDependencies bundles collaborators for the service.
type RegistrationDependencies struct {
	RegistrationRepo repository.RegistrationRepository
	EventRepo        repository.EventRepository
	UserRepo         repository.UserRepository
	Dispatcher       events.Dispatcher
}

// NewRegistrationService builds the service.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	return &RegistrationService{
		registrations: deps.RegistrationRepo,
		eventsRepo:    deps.EventRepo,
		users:         deps.UserRepo,
		dispatcher:    deps.Dispatcher,
	}
}

// Register applies the acting user to an event. A user may register for
// an event once; the application starts as APPLIED with empty form data.
func (s *RegistrationService) Register(ctx context.Context, identity *auth.Identity, eventID int64) (*domain.Registration, error) {
	actor, err := s.actingUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
		}
		return nil, err
	}

	if _, err := s.registrations.GetByUserAndEvent(ctx, actor.ID, event.ID); err == nil {
		return nil, apperrors.NewConflict("already registered for this event", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	reg := &domain.Registration{
		Reference:      uuid.NewString(),
		EventID:        event.ID,
		UserID:         actor.ID,
		Status:         domain.RegistrationStatusApplied,
		SubmissionDate: time.Now(),
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRegistrationSubmitted,
		ClubID:    event.ClubID,
		Actor:     events.Actor{Subject: identity.Subject, Role: identity.Role},
		Timestamp: time.Now(),
		Payload: events.RegistrationSubmittedPayload{
			RegistrationID: reg.ID,
			Reference:      reg.Reference,
			EventID:        reg.EventID,
			UserID:         reg.UserID,
		},
	})
	return reg, nil
}

// UpdateFormData attaches the submitted form payload to the caller's
// own registration and refreshes the submission timestamp.
func (s *RegistrationService) UpdateFormData(ctx context.Context, identity *auth.Identity, regID int64, formData string) error {
	actor, err := s.actingUser(ctx, identity)
	if err != nil {
		return err
	}

	reg, err := s.registrations.GetByID(ctx, regID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("registration", nil)
		}
		return err
	}
	if reg.UserID != actor.ID {
		return apperrors.NewForbidden("registration belongs to another user")
	}

	return s.registrations.UpdateFormData(ctx, regID, formData)
}

// ListMine returns the acting user's registrations, newest first.
func (s *RegistrationService) ListMine(ctx context.Context, identity *auth.Identity) ([]domain.Registration, error) {
	actor, err := s.actingUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.registrations.ListByUser(ctx, actor.ID)
}

// ListByClub returns every registration for a club's events. Ownership
// of the club is the caller's concern.
func (s *RegistrationService) ListByClub(ctx context.Context, clubID string) ([]domain.Registration, error) {
	return s.registrations.ListByClub(ctx, clubID)
}

// GetByID fetches one registration.
func (s *RegistrationService) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	return s.registrations.GetByID(ctx, id)
}

// UpdateStatus moves a registration to the given status.
func (s *RegistrationService) UpdateStatus(ctx context.Context, identity *auth.Identity, reg *domain.Registration, clubID string, status domain.RegistrationStatus) error {
	if err := s.registrations.UpdateStatus(ctx, reg.ID, status); err != nil {
		return err
	}

	published := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRegistrationStatusChanged,
		ClubID:    clubID,
		Timestamp: time.Now(),
		Payload: events.RegistrationStatusChangedPayload{
			RegistrationID: reg.ID,
			OldStatus:      reg.Status,
			NewStatus:      status,
		},
	}
	if identity != nil {
		published.Actor = events.Actor{Subject: identity.Subject, Role: identity.Role}
	}
	s.publish(ctx, published)
	return nil
}

// actingUser resolves the token subject back to a stored account.
func (s *RegistrationService) actingUser(ctx context.Context, identity *auth.Identity) (*domain.User, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	user, err := s.users.GetByEmail(ctx, identity.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("account no longer exists")
		}
		return nil, err
	}
	return user, nil
}

func (s *RegistrationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
