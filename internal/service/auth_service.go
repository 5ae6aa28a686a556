package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/club-service/internal/auth"
	"github.com/spec-kit/club-service/internal/config"
	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/events"
	"github.com/spec-kit/club-service/internal/repository"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// Login failure kinds. The HTTP layer may flatten these into one
// message, but they stay distinct here.
var (
	ErrInvalidEmailDomain = errors.New("email domain not allowed")
	ErrNotRegistered      = errors.New("email not registered")
	ErrWrongPassword      = errors.New("incorrect password")
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users          repository.UserRepository
	clubs          repository.ClubRepository
	hasher         auth.PasswordHasher
	tokens         *auth.TokenManager
	dispatcher     events.Dispatcher
	allowedDomains []string
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	ClubRepo   repository.ClubRepository
	Hasher     auth.PasswordHasher
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewBcryptHasher(cfg.BcryptCost)
	}
	return &AuthService{
		users:          deps.UserRepo,
		clubs:          deps.ClubRepo,
		hasher:         hasher,
		tokens:         auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		dispatcher:     deps.Dispatcher,
		allowedDomains: cfg.AllowedEmailDomains,
	}
}

// RegisterInput describes a signup request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	ClubID    string
}

// Register creates a new account. Validation order: email domain,
// password strength (length, uppercase, special character, first
// failure wins), role, club assignment, email uniqueness.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if !s.emailDomainAllowed(input.Email) {
		return nil, ErrInvalidEmailDomain
	}
	if err := auth.CheckPasswordStrength(input.Password); err != nil {
		return nil, err
	}

	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}

	var clubID *string
	if role == domain.RoleFaculty {
		trimmed := strings.TrimSpace(input.ClubID)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("club id is required for FACULTY role", nil)
		}
		exists, err := s.clubs.Exists(ctx, trimmed)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationError("club does not exist", map[string]any{"club_id": trimmed})
		}
		clubID = &trimmed
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		ClubID:       clubID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		Actor:     events.Actor{Subject: user.Email, Role: user.Role},
		Timestamp: time.Now(),
		Payload: events.UserRegisteredPayload{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
	})
	return user, nil
}

// Login verifies credentials and mints a bearer token. The token
// captures role and club scope as of this moment; later account changes
// do not reach tokens already issued.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if !s.emailDomainAllowed(email) {
		return nil, "", time.Time{}, ErrInvalidEmailDomain
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, ErrNotRegistered
		}
		return nil, "", time.Time{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", time.Time{}, ErrWrongPassword
	}

	token, expiresAt, err := s.tokens.Mint(user.Email, user.Role, user.ClubScope())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// emailDomainAllowed runs before any store lookup; rejecting a bad
// domain is cheap.
func (s *AuthService) emailDomainAllowed(email string) bool {
	lowered := strings.ToLower(email)
	for _, allowed := range s.allowedDomains {
		if strings.HasSuffix(lowered, strings.ToLower(allowed)) {
			return true
		}
	}
	return false
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
