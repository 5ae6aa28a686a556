package service

import (
	"context"
	"strings"

	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/repository"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// UserService covers admin-side account management.
type UserService struct {
	users repository.UserRepository
	clubs repository.ClubRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, clubs repository.ClubRepository) *UserService {
	return &UserService{users: users, clubs: clubs}
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// AssignClub changes an account's role and club scope. Tokens issued
// before the change keep their original claims until they expire.
func (s *UserService) AssignClub(ctx context.Context, userID int64, rawRole, clubID string) error {
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": rawRole})
	}

	var scope *string
	if trimmed := strings.TrimSpace(clubID); trimmed != "" {
		exists, err := s.clubs.Exists(ctx, trimmed)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewValidationError("club does not exist", map[string]any{"club_id": trimmed})
		}
		scope = &trimmed
	} else if role == domain.RoleFaculty {
		return apperrors.NewValidationError("club id is required for FACULTY role", nil)
	}

	return s.users.AssignClub(ctx, userID, role, scope)
}
