package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/repository"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

const clubsCacheKey = "cache:clubs:all"

// ClubService coordinates club directory workflows.
type ClubService struct {
	clubs         repository.ClubRepository
	events        repository.EventRepository
	registrations repository.RegistrationRepository
	users         repository.UserRepository
	cache         *redis.Client
	cacheTTL      time.Duration
}

// ClubDependencies bundles collaborators for the club service.
type ClubDependencies struct {
	ClubRepo         repository.ClubRepository
	EventRepo        repository.EventRepository
	RegistrationRepo repository.RegistrationRepository
	UserRepo         repository.UserRepository
	Cache            *redis.Client
	CacheTTL         time.Duration
}

// NewClubService builds the service.
func NewClubService(deps ClubDependencies) *ClubService {
	return &ClubService{
		clubs:         deps.ClubRepo,
		events:        deps.EventRepo,
		registrations: deps.RegistrationRepo,
		users:         deps.UserRepo,
		cache:         deps.Cache,
		cacheTTL:      deps.CacheTTL,
	}
}

// EventWithCount pairs an event with its registration count for the
// public club page.
type EventWithCount struct {
	Event    domain.Event
	RegCount int64
}

// ClubDetails aggregates everything the public club page shows.
type ClubDetails struct {
	Club    *domain.Club
	Events  []EventWithCount
	Faculty []domain.User
}

// ListAll returns clubs ordered by name, via the listing cache when fresh.
func (s *ClubService) ListAll(ctx context.Context) ([]domain.Club, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, clubsCacheKey).Bytes(); err == nil {
			var cached []domain.Club
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	clubs, err := s.clubs.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(clubs); err == nil {
			s.cache.Set(ctx, clubsCacheKey, raw, s.cacheTTL)
		}
	}
	return clubs, nil
}

// Details returns the club, its visible events with registration
// counts, and the faculty assigned to it.
func (s *ClubService) Details(ctx context.Context, id string) (*ClubDetails, error) {
	club, err := s.clubs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visible, err := s.events.ListVisibleByClub(ctx, id)
	if err != nil {
		return nil, err
	}
	withCounts := make([]EventWithCount, 0, len(visible))
	for _, event := range visible {
		count, err := s.registrations.CountByEvent(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		withCounts = append(withCounts, EventWithCount{Event: event, RegCount: count})
	}

	faculty, err := s.users.ListByClub(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ClubDetails{Club: club, Events: withCounts, Faculty: faculty}, nil
}

// Create adds a club with a caller-assigned id.
func (s *ClubService) Create(ctx context.Context, club *domain.Club) error {
	exists, err := s.clubs.Exists(ctx, club.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewConflict("club id already exists", map[string]any{"club_id": club.ID})
	}
	if err := s.clubs.Create(ctx, club); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update overwrites a club's name and description.
func (s *ClubService) Update(ctx context.Context, club *domain.Club) error {
	if err := s.clubs.Update(ctx, club); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a club.
func (s *ClubService) Delete(ctx context.Context, id string) error {
	if err := s.clubs.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ClubService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, clubsCacheKey, upcomingCacheKey)
	}
}
