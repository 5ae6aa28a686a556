package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/club-service/internal/auth"
	"github.com/spec-kit/club-service/internal/config"
	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/events"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByClub(_ context.Context, clubID string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.byEmail {
		if u.ClubID != nil && *u.ClubID == clubID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) AssignClub(_ context.Context, id int64, role domain.Role, clubID *string) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.Role = role
			u.ClubID = clubID
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeClubRepo struct {
	clubs map[string]*domain.Club
}

func newFakeClubRepo(ids ...string) *fakeClubRepo {
	r := &fakeClubRepo{clubs: map[string]*domain.Club{}}
	for _, id := range ids {
		r.clubs[id] = &domain.Club{ID: id, Name: id}
	}
	return r
}

func (r *fakeClubRepo) Create(_ context.Context, club *domain.Club) error {
	r.clubs[club.ID] = club
	return nil
}

func (r *fakeClubRepo) Update(_ context.Context, club *domain.Club) error {
	r.clubs[club.ID] = club
	return nil
}

func (r *fakeClubRepo) Delete(_ context.Context, id string) error {
	delete(r.clubs, id)
	return nil
}

func (r *fakeClubRepo) GetByID(_ context.Context, id string) (*domain.Club, error) {
	if c, ok := r.clubs[id]; ok {
		return c, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeClubRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.clubs[id]
	return ok, nil
}

func (r *fakeClubRepo) ListOrdered(_ context.Context) ([]domain.Club, error) {
	out := make([]domain.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		out = append(out, *c)
	}
	return out, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:           "test-secret",
		TokenTTLHours:       24,
		BcryptCost:          bcrypt.MinCost,
		AllowedEmailDomains: []string{"@banasthali.in", "@gmail.com"},
	}
}

func newTestAuthService(users *fakeUserRepo, clubs *fakeClubRepo) *AuthService {
	return NewAuthService(testAuthConfig(), AuthDependencies{
		UserRepo:   users,
		ClubRepo:   clubs,
		Hasher:     auth.NewBcryptHasher(bcrypt.MinCost),
		Dispatcher: events.NewInMemoryDispatcher(),
	})
}

func TestRegisterSuccess(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeClubRepo("CS01"))

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@banasthali.in",
		Password:  "Abcdefg!",
		Role:      "student",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Nil(t, user.ClubID)
	assert.NotEqual(t, "Abcdefg!", user.PasswordHash)

	stored, err := users.GetByEmail(context.Background(), "asha@banasthali.in")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterValidationOrder(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeClubRepo("CS01"))

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr string
	}{
		{
			"bad domain rejected before password",
			RegisterInput{Email: "a@evil.com", Password: "x", Role: "STUDENT"},
			ErrInvalidEmailDomain.Error(),
		},
		{
			"weak password rejected before role",
			RegisterInput{Email: "a@gmail.com", Password: "short", Role: "WIZARD"},
			"password must be at least 8 characters long",
		},
		{
			"unknown role",
			RegisterInput{Email: "a@gmail.com", Password: "Abcdefg!", Role: "WIZARD"},
			"unknown role",
		},
		{
			"faculty without club",
			RegisterInput{Email: "a@gmail.com", Password: "Abcdefg!", Role: "FACULTY"},
			"club id is required for FACULTY role",
		},
		{
			"faculty with missing club",
			RegisterInput{Email: "a@gmail.com", Password: "Abcdefg!", Role: "FACULTY", ClubID: "NOPE"},
			"club does not exist",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRegisterFacultyGetsClubScope(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeClubRepo("CS01"))

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "prof@gmail.com",
		Password: "Abcdefg!",
		Role:     "FACULTY",
		ClubID:   " CS01 ",
	})
	require.NoError(t, err)
	require.NotNil(t, user.ClubID)
	assert.Equal(t, "CS01", *user.ClubID)
	assert.Equal(t, "CS01", user.ClubScope())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeClubRepo())

	input := RegisterInput{Email: "asha@gmail.com", Password: "Abcdefg!", Role: "STUDENT"}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestLoginFailureKinds(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeClubRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "asha@gmail.com", Password: "Abcdefg!", Role: "STUDENT",
	})
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "asha@evil.com", "Abcdefg!")
	assert.ErrorIs(t, err, ErrInvalidEmailDomain)

	_, _, _, err = svc.Login(context.Background(), "nobody@gmail.com", "Abcdefg!")
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, _, _, err = svc.Login(context.Background(), "asha@gmail.com", "wrong-Pass1!")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLoginMintsTokenWithScope(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeClubRepo("CS01"))

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "prof@gmail.com", Password: "Abcdefg!", Role: "FACULTY", ClubID: "CS01",
	})
	require.NoError(t, err)

	user, token, expiresAt, err := svc.Login(context.Background(), "prof@gmail.com", "Abcdefg!")
	require.NoError(t, err)
	assert.Equal(t, "prof@gmail.com", user.Email)
	assert.False(t, expiresAt.IsZero())

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "prof@gmail.com", claims.Subject)
	assert.Equal(t, "FACULTY", claims.Role)
	assert.Equal(t, "CS01", claims.ClubID)
}

func TestTokenKeepsClaimsAfterReassignment(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeClubRepo("CS01", "EE02"))

	user, err := svc.Register(context.Background(), RegisterInput{
		Email: "prof@gmail.com", Password: "Abcdefg!", Role: "FACULTY", ClubID: "CS01",
	})
	require.NoError(t, err)

	_, token, _, err := svc.Login(context.Background(), "prof@gmail.com", "Abcdefg!")
	require.NoError(t, err)

	// Reassigning the account does not reach tokens already issued.
	newClub := "EE02"
	require.NoError(t, users.AssignClub(context.Background(), user.ID, domain.RoleFaculty, &newClub))

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "CS01", claims.ClubID)
}
