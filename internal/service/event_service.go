package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/club-service/internal/auth"
	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/events"
	"github.com/spec-kit/club-service/internal/repository"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

const upcomingCacheKey = "cache:events:upcoming"

// EventService coordinates event catalog workflows.
type EventService struct {
	events     repository.EventRepository
	clubs      repository.ClubRepository
	dispatcher events.Dispatcher
	cache      *redis.Client
	cacheTTL   time.Duration
}

// EventDependencies bundles collaborators for the event service.
type EventDependencies struct {
	EventRepo  repository.EventRepository
	ClubRepo   repository.ClubRepository
	Dispatcher events.Dispatcher
	Cache      *redis.Client
	CacheTTL   time.Duration
}

// NewEventService builds the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		events:     deps.EventRepo,
		clubs:      deps.ClubRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
	}
}

// EventInput describes event creation/update payloads.
type EventInput struct {
	ClubID               string
	VenueID              *string
	Name                 string
	Description          string
	EventDate            time.Time
	EventTime            *string
	Deadline             *time.Time
	RegistrationFormLink *string
}

// ListAll returns every event ordered by date.
func (s *EventService) ListAll(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}

// GetByID fetches one event.
func (s *EventService) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

// GetByClubAndName fetches an event by its club and name.
func (s *EventService) GetByClubAndName(ctx context.Context, clubID, name string) (*domain.Event, error) {
	return s.events.GetByClubAndName(ctx, clubID, name)
}

// Upcoming returns visible events dated today or later, nearest first.
// Results are served from the Redis listing cache when fresh.
func (s *EventService) Upcoming(ctx context.Context) ([]domain.Event, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, upcomingCacheKey).Bytes(); err == nil {
			var cached []domain.Event
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	upcoming, err := s.events.ListUpcoming(ctx, today())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(upcoming); err == nil {
			s.cache.Set(ctx, upcomingCacheKey, raw, s.cacheTTL)
		}
	}
	return upcoming, nil
}

// VisibleByClub returns a club's public events ordered by date.
func (s *EventService) VisibleByClub(ctx context.Context, clubID string) ([]domain.Event, error) {
	return s.events.ListVisibleByClub(ctx, clubID)
}

// ListByClub returns all of a club's events, hidden included.
func (s *EventService) ListByClub(ctx context.Context, clubID string) ([]domain.Event, error) {
	return s.events.ListByClub(ctx, clubID)
}

// Create validates dates and persists a new event.
func (s *EventService) Create(ctx context.Context, actor *auth.Identity, input EventInput) (*domain.Event, error) {
	if err := validateEventDates(input.EventDate, input.Deadline); err != nil {
		return nil, err
	}
	exists, err := s.clubs.Exists(ctx, input.ClubID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewValidationError("club does not exist", map[string]any{"club_id": input.ClubID})
	}

	event := &domain.Event{
		ClubID:               input.ClubID,
		VenueID:              input.VenueID,
		Name:                 input.Name,
		Description:          input.Description,
		EventDate:            input.EventDate,
		EventTime:            input.EventTime,
		Deadline:             input.Deadline,
		RegistrationFormLink: input.RegistrationFormLink,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.publishLifecycle(ctx, events.EventClubEventCreated, actor, event)
	return event, nil
}

// Update validates dates and overwrites the event's mutable fields.
func (s *EventService) Update(ctx context.Context, actor *auth.Identity, id int64, input EventInput) (*domain.Event, error) {
	if err := validateEventDates(input.EventDate, input.Deadline); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event.VenueID = input.VenueID
	event.Name = input.Name
	event.Description = input.Description
	event.EventDate = input.EventDate
	event.EventTime = input.EventTime
	event.Deadline = input.Deadline
	event.RegistrationFormLink = input.RegistrationFormLink

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.publishLifecycle(ctx, events.EventClubEventUpdated, actor, event)
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, actor *auth.Identity, event *domain.Event) error {
	if err := s.events.Delete(ctx, event.ID); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	s.publishLifecycle(ctx, events.EventClubEventDeleted, actor, event)
	return nil
}

// SetHidden toggles an event's public visibility.
func (s *EventService) SetHidden(ctx context.Context, id int64, hidden bool) error {
	if err := s.events.SetHidden(ctx, id, hidden); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *EventService) invalidateListings(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, upcomingCacheKey, clubsCacheKey)
	}
}

func (s *EventService) publishLifecycle(ctx context.Context, eventType events.EventType, actor *auth.Identity, event *domain.Event) {
	if s.dispatcher == nil {
		return
	}
	published := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ClubID:    event.ClubID,
		Timestamp: time.Now(),
		Payload:   events.ClubEventPayload{EventID: event.ID, EventName: event.Name},
	}
	if actor != nil {
		published.Actor = events.Actor{Subject: actor.Subject, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, published)
}

// validateEventDates enforces the catalog rules: event date today or
// later, deadline strictly before the event date.
func validateEventDates(eventDate time.Time, deadline *time.Time) error {
	if eventDate.Before(today()) {
		return apperrors.NewValidationError("event date must be today or a future date", nil)
	}
	if deadline != nil && !deadline.Before(eventDate) {
		return apperrors.NewValidationError("registration deadline must be before the event date", nil)
	}
	return nil
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
