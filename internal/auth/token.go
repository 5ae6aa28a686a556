package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/club-service/internal/domain"
)

// ErrInvalidToken covers every way a token can fail validation:
// malformed encoding, bad signature, expiry, missing or unknown claims.
// Callers treat all of them the same, so the parse error is wrapped
// rather than enumerated.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates the signed bearer tokens. Tokens are
// self-contained; nothing is stored server-side and issued tokens cannot
// be revoked before expiry.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager signing with the given secret.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims is the JWT payload. Subject carries the account email.
type Claims struct {
	Role   string `json:"role"`
	ClubID string `json:"club_id,omitempty"`
	jwt.RegisteredClaims
}

// Mint signs a token for the subject, stamping issue and expiry times
// from the manager's clock. Role and club scope are captured as they are
// at mint time; later changes to the account do not affect the token.
func (tm *TokenManager) Mint(email string, role domain.Role, clubID string) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Role:   string(role),
		ClubID: clubID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a raw token and returns its claims with the role
// canonicalized. Any defect, including an unknown role or a missing
// subject, yields ErrInvalidToken; Parse never panics on bad input.
func (tm *TokenManager) Parse(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return nil, ErrInvalidToken
	}
	claims.Role = string(role)
	return claims, nil
}
