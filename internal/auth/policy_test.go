package auth

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/club-service/internal/domain"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).HTTPStatus
}

func anonymous() *Identity { return nil }

func identity(role domain.Role, clubID string) *Identity {
	return &Identity{Subject: "someone@gmail.com", Role: role, ClubID: clubID}
}

func TestEvaluateDenyByDefault(t *testing.T) {
	table := DefaultPolicyTable()

	err := table.Evaluate(http.MethodGet, "/api/v1/does-not-exist", anonymous())
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	// Any authenticated identity passes the default rule.
	assert.NoError(t, table.Evaluate(http.MethodGet, "/api/v1/does-not-exist", identity(domain.RoleOffice, "")))
}

func TestEvaluatePublicRoutes(t *testing.T) {
	table := DefaultPolicyTable()

	public := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodPost, "/api/v1/auth/signup"},
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/api/v1/events"},
		{http.MethodGet, "/api/v1/events/upcoming"},
		{http.MethodGet, "/api/v1/events/42"},
		{http.MethodGet, "/api/v1/events/club/CS01"},
		{http.MethodGet, "/api/v1/clubs/all"},
		{http.MethodGet, "/api/v1/clubs/CS01/details"},
		{http.MethodGet, "/"},
		{http.MethodGet, "/login.html"},
		{http.MethodGet, "/js/main.js"},
	}
	for _, tc := range public {
		assert.NoError(t, table.Evaluate(tc.method, tc.path, anonymous()), "%s %s", tc.method, tc.path)
	}
}

func TestEvaluateClubsGetOnlyPublic(t *testing.T) {
	table := DefaultPolicyTable()

	assert.NoError(t, table.Evaluate(http.MethodGet, "/api/v1/clubs/CS01/details", anonymous()))

	// Mutations under the clubs prefix are not public; they fall through
	// to the deny-by-default tail.
	err := table.Evaluate(http.MethodPost, "/api/v1/clubs/CS01/details", anonymous())
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestEvaluateEventMutationsNotPublic(t *testing.T) {
	table := DefaultPolicyTable()

	err := table.Evaluate(http.MethodPost, "/api/v1/events/42", anonymous())
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestEvaluateRoleGates(t *testing.T) {
	table := DefaultPolicyTable()

	tests := []struct {
		name     string
		method   string
		path     string
		identity *Identity
		status   int
	}{
		{"admin route anonymous", http.MethodGet, "/api/v1/admin/users", anonymous(), http.StatusUnauthorized},
		{"admin route as student", http.MethodGet, "/api/v1/admin/users", identity(domain.RoleStudent, ""), http.StatusForbidden},
		{"admin route as faculty", http.MethodGet, "/api/v1/admin/users", identity(domain.RoleFaculty, "CS01"), http.StatusForbidden},
		{"admin route as admin", http.MethodGet, "/api/v1/admin/users", identity(domain.RoleAdmin, ""), 0},
		{"faculty route as student", http.MethodPost, "/api/v1/faculty/add-event", identity(domain.RoleStudent, ""), http.StatusForbidden},
		{"faculty route as faculty", http.MethodPost, "/api/v1/faculty/add-event", identity(domain.RoleFaculty, "CS01"), 0},
		{"student route anonymous", http.MethodPost, "/api/v1/student/register", anonymous(), http.StatusUnauthorized},
		{"student route as office", http.MethodPost, "/api/v1/student/register", identity(domain.RoleOffice, ""), http.StatusForbidden},
		{"student route as student", http.MethodPost, "/api/v1/student/register", identity(domain.RoleStudent, ""), 0},
		{"student route as admin", http.MethodPost, "/api/v1/student/register", identity(domain.RoleAdmin, ""), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := table.Evaluate(tc.method, tc.path, tc.identity)
			if tc.status == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tc.status, statusOf(t, err))
			}
		})
	}
}

func TestEvaluateFirstMatchWins(t *testing.T) {
	table := NewPolicyTable([]Rule{
		{Pattern: "/api/things/special", Class: Public},
		{Pattern: "/api/things/**", Class: RequireRole, Roles: []domain.Role{domain.RoleAdmin}},
	})

	assert.NoError(t, table.Evaluate(http.MethodGet, "/api/things/special", anonymous()))
	err := table.Evaluate(http.MethodGet, "/api/things/other", anonymous())
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

// Every listed pattern must be reachable by at least one concrete path,
// guarding the table against dead or shadowed rules.
func TestDefaultTablePatternsReachable(t *testing.T) {
	table := DefaultPolicyTable()
	rules := table.Rules()
	require.NotEmpty(t, rules)

	for i, rule := range rules {
		path := samplePath(rule.Pattern)
		method := rule.Method
		if method == "" {
			method = http.MethodGet
		}
		matched, ok := table.match(method, path)
		require.True(t, ok, "pattern %q produced unmatched sample %q", rule.Pattern, path)
		assert.Equal(t, rules[i].Pattern, matched.Pattern, "sample %q matched an earlier rule", path)
	}
}

func samplePath(pattern string) string {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return prefix + "/sample"
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return "/sample" + suffix
	}
	return pattern
}

func TestBypassesResolution(t *testing.T) {
	table := DefaultPolicyTable()

	assert.True(t, table.BypassesResolution("/api/v1/auth/login"))
	assert.True(t, table.BypassesResolution("/api/v1/clubs/CS01/details"))
	assert.True(t, table.BypassesResolution("/login.html"))
	assert.True(t, table.BypassesResolution("/health/ready"))

	assert.False(t, table.BypassesResolution("/api/v1/events/upcoming"))
	assert.False(t, table.BypassesResolution("/api/v1/faculty/my-events"))
	assert.False(t, table.BypassesResolution("/api/v1/student/register"))
}

func TestAuthorizeOwnership(t *testing.T) {
	tests := []struct {
		name           string
		identity       *Identity
		resourceClubID string
		allowed        bool
	}{
		{"faculty own club", identity(domain.RoleFaculty, "CS01"), "CS01", true},
		{"faculty other club", identity(domain.RoleFaculty, "CS01"), "EE02", false},
		{"admin never owns", identity(domain.RoleAdmin, ""), "CS01", false},
		{"admin with scope never owns", identity(domain.RoleAdmin, "CS01"), "CS01", false},
		{"student never owns", identity(domain.RoleStudent, "CS01"), "CS01", false},
		{"faculty without scope", identity(domain.RoleFaculty, ""), "CS01", false},
		{"resource without club", identity(domain.RoleFaculty, "CS01"), "", false},
		{"anonymous", nil, "CS01", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeOwnership(tc.identity, tc.resourceClubID)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, http.StatusForbidden, statusOf(t, err))
			}
		})
	}
}
