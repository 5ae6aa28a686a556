package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/club-service/internal/domain"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testTokenManager(now time.Time) *TokenManager {
	tm := NewTokenManager("test-secret", time.Hour)
	tm.now = func() time.Time { return now }
	return tm
}

func TestMintParseRoundtrip(t *testing.T) {
	tm := testTokenManager(baseTime)

	token, expiresAt, err := tm.Mint("prof@gmail.com", domain.RoleFaculty, "CS01")
	require.NoError(t, err)
	assert.Equal(t, baseTime.Add(time.Hour), expiresAt)

	tm.now = func() time.Time { return baseTime.Add(30 * time.Minute) }
	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "prof@gmail.com", claims.Subject)
	assert.Equal(t, string(domain.RoleFaculty), claims.Role)
	assert.Equal(t, "CS01", claims.ClubID)
	assert.Equal(t, baseTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestMintOmitsEmptyClubScope(t *testing.T) {
	tm := testTokenManager(baseTime)

	token, _, err := tm.Mint("student@gmail.com", domain.RoleStudent, "")
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Empty(t, claims.ClubID)
}

func TestParseExpiredToken(t *testing.T) {
	tm := testTokenManager(baseTime)
	token, _, err := tm.Mint("prof@gmail.com", domain.RoleFaculty, "CS01")
	require.NoError(t, err)

	for _, offset := range []time.Duration{time.Hour, time.Hour + time.Second, 48 * time.Hour} {
		tm.now = func() time.Time { return baseTime.Add(offset) }
		_, err := tm.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "offset %v", offset)
	}
}

func TestParseTamperedToken(t *testing.T) {
	tm := testTokenManager(baseTime)
	token, _, err := tm.Mint("prof@gmail.com", domain.RoleFaculty, "CS01")
	require.NoError(t, err)

	// Flip one character in the payload segment.
	raw := []byte(token)
	pos := len(raw) / 2
	if raw[pos] == 'A' {
		raw[pos] = 'B'
	} else {
		raw[pos] = 'A'
	}

	_, err = tm.Parse(string(raw))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	tm := testTokenManager(baseTime)
	token, _, err := tm.Mint("prof@gmail.com", domain.RoleFaculty, "CS01")
	require.NoError(t, err)

	other := NewTokenManager("another-secret", time.Hour)
	other.now = tm.now
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseMalformedToken(t *testing.T) {
	tm := testTokenManager(baseTime)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "...."} {
		_, err := tm.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw %q", raw)
	}
}

func signRaw(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParseRejectsMissingClaims(t *testing.T) {
	tm := testTokenManager(baseTime)
	exp := baseTime.Add(time.Hour).Unix()

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing subject", jwt.MapClaims{"role": "STUDENT", "exp": exp}},
		{"missing role", jwt.MapClaims{"sub": "x@gmail.com", "exp": exp}},
		{"missing expiry", jwt.MapClaims{"sub": "x@gmail.com", "role": "STUDENT"}},
		{"unknown role", jwt.MapClaims{"sub": "x@gmail.com", "role": "WIZARD", "exp": exp}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tm.Parse(signRaw(t, "test-secret", tc.claims))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseCanonicalizesRole(t *testing.T) {
	tm := testTokenManager(baseTime)
	token := signRaw(t, "test-secret", jwt.MapClaims{
		"sub":  "prof@gmail.com",
		"role": "faculty",
		"exp":  baseTime.Add(time.Hour).Unix(),
	})

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleFaculty), claims.Role)
}
