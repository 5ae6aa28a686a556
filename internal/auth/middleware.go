package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/domain"
)

const identityKey = "auth_identity"

// bearerPrefix must match exactly, including the single trailing space.
const bearerPrefix = "Bearer "

// Identity is the resolved caller for one request. A request with no
// valid token carries no Identity at all; IdentityFromContext reports
// that as anonymous.
type Identity struct {
	Subject string
	Role    domain.Role
	ClubID  string
}

// Resolver turns bearer tokens into request identities. It is purely
// observational: an absent, malformed or invalid token leaves the
// request anonymous and never fails it here. Protected routes are
// rejected later by the policy table.
type Resolver struct {
	tokens *TokenManager
	policy *PolicyTable
}

// NewResolver constructs the middleware.
func NewResolver(tokens *TokenManager, policy *PolicyTable) *Resolver {
	return &Resolver{tokens: tokens, policy: policy}
}

// Handle resolves the caller identity once per request, before any
// route handler. Paths on the policy table's bypass list skip token
// decoding entirely and proceed anonymous.
func (r *Resolver) Handle(c *fiber.Ctx) error {
	if r.policy.BypassesResolution(c.Path()) {
		return c.Next()
	}
	if IsResolved(c) {
		return c.Next()
	}

	raw, ok := extractBearer(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	claims, err := r.tokens.Parse(raw)
	if err != nil {
		// Invalid tokens are an expected outcome, not a failure.
		return c.Next()
	}

	c.Locals(identityKey, &Identity{
		Subject: claims.Subject,
		Role:    domain.Role(claims.Role),
		ClubID:  claims.ClubID,
	})
	return c.Next()
}

// IdentityFromContext retrieves the resolved caller. ok is false for
// anonymous requests.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

// IsResolved reports whether an identity is already attached. The first
// resolution wins; nothing downstream may overwrite it.
func IsResolved(c *fiber.Ctx) bool {
	_, ok := IdentityFromContext(c)
	return ok
}

func extractBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}
