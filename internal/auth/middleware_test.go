package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/club-service/internal/domain"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

type whoamiResponse struct {
	Anonymous bool   `json:"anonymous"`
	Subject   string `json:"subject"`
	Role      string `json:"role"`
	Club      string `json:"club"`
}

func resolverApp(tm *TokenManager) *fiber.App {
	table := NewPolicyTable([]Rule{
		{Pattern: "/public/**", Class: Public, BypassResolve: true},
	})
	app := fiber.New()
	app.Use(NewResolver(tm, table).Handle)

	whoami := func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return c.JSON(whoamiResponse{Anonymous: true})
		}
		return c.JSON(whoamiResponse{
			Subject: identity.Subject,
			Role:    string(identity.Role),
			Club:    identity.ClubID,
		})
	}
	app.Get("/whoami", whoami)
	app.Get("/public/whoami", whoami)
	return app
}

func doWhoami(t *testing.T, app *fiber.App, path, authHeader string) whoamiResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out whoamiResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestResolverValidToken(t *testing.T) {
	tm := testTokenManager(baseTime)
	token, _, err := tm.Mint("prof@gmail.com", domain.RoleFaculty, "CS01")
	require.NoError(t, err)
	app := resolverApp(tm)

	out := doWhoami(t, app, "/whoami", "Bearer "+token)
	assert.False(t, out.Anonymous)
	assert.Equal(t, "prof@gmail.com", out.Subject)
	assert.Equal(t, "FACULTY", out.Role)
	assert.Equal(t, "CS01", out.Club)
}

func TestResolverAnonymousInputs(t *testing.T) {
	tm := testTokenManager(baseTime)
	token, _, err := tm.Mint("prof@gmail.com", domain.RoleFaculty, "CS01")
	require.NoError(t, err)
	app := resolverApp(tm)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"empty bearer", "Bearer "},
		{"lowercase scheme", "bearer " + token},
		{"no space after scheme", "Bearer" + token},
		{"wrong scheme", "Basic " + token},
		{"garbage token", "Bearer not-a-token"},
		{"tampered token", "Bearer " + token + "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := doWhoami(t, app, "/whoami", tc.header)
			assert.True(t, out.Anonymous)
		})
	}
}

func TestResolverExpiredTokenIsAnonymous(t *testing.T) {
	tm := testTokenManager(baseTime)
	token, _, err := tm.Mint("prof@gmail.com", domain.RoleFaculty, "CS01")
	require.NoError(t, err)
	tm.now = func() time.Time { return baseTime.Add(2 * time.Hour) }
	app := resolverApp(tm)

	out := doWhoami(t, app, "/whoami", "Bearer "+token)
	assert.True(t, out.Anonymous)
}

func TestResolverBypassSkipsDecode(t *testing.T) {
	tm := testTokenManager(baseTime)
	token, _, err := tm.Mint("prof@gmail.com", domain.RoleFaculty, "CS01")
	require.NoError(t, err)
	app := resolverApp(tm)

	// Even a valid token is ignored on bypassed paths.
	out := doWhoami(t, app, "/public/whoami", "Bearer "+token)
	assert.True(t, out.Anonymous)
}

func TestResolverIdempotent(t *testing.T) {
	tm := testTokenManager(baseTime)
	token, _, err := tm.Mint("prof@gmail.com", domain.RoleFaculty, "CS01")
	require.NoError(t, err)
	app := resolverApp(tm)

	first := doWhoami(t, app, "/whoami", "Bearer "+token)
	second := doWhoami(t, app, "/whoami", "Bearer "+token)
	assert.Equal(t, first, second)
}

func TestResolverDoesNotOverwriteIdentity(t *testing.T) {
	tm := testTokenManager(baseTime)
	tokenA, _, err := tm.Mint("first@gmail.com", domain.RoleStudent, "")
	require.NoError(t, err)
	tokenB, _, err := tm.Mint("second@gmail.com", domain.RoleAdmin, "")
	require.NoError(t, err)

	table := NewPolicyTable(nil)
	resolver := NewResolver(tm, table)

	app := fiber.New()
	app.Use(resolver.Handle)
	// A second resolution pass with a different token must not replace
	// the identity resolved first.
	app.Use(func(c *fiber.Ctx) error {
		c.Request().Header.Set("Authorization", "Bearer "+tokenB)
		return c.Next()
	})
	app.Use(resolver.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		return c.JSON(whoamiResponse{Subject: identity.Subject})
	})

	out := doWhoami(t, app, "/whoami", "Bearer "+tokenA)
	assert.Equal(t, "first@gmail.com", out.Subject)
}

func TestEnforceEndToEnd(t *testing.T) {
	tm := testTokenManager(baseTime)
	table := DefaultPolicyTable()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	app.Use(NewResolver(tm, table).Handle)
	app.Use(table.Enforce())
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }
	app.Get("/api/v1/events/upcoming", ok)
	app.Get("/api/v1/admin/users", ok)
	app.Get("/api/v1/unlisted", ok)

	adminToken, _, err := tm.Mint("admin@gmail.com", domain.RoleAdmin, "")
	require.NoError(t, err)
	studentToken, _, err := tm.Mint("student@gmail.com", domain.RoleStudent, "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"public anonymous", "/api/v1/events/upcoming", "", http.StatusOK},
		{"unlisted anonymous", "/api/v1/unlisted", "", http.StatusUnauthorized},
		{"unlisted authenticated", "/api/v1/unlisted", "Bearer " + studentToken, http.StatusOK},
		{"admin anonymous", "/api/v1/admin/users", "", http.StatusUnauthorized},
		{"admin as student", "/api/v1/admin/users", "Bearer " + studentToken, http.StatusForbidden},
		{"admin as admin", "/api/v1/admin/users", "Bearer " + adminToken, http.StatusOK},
		{"admin with invalid token", "/api/v1/admin/users", "Bearer junk", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
