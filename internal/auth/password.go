package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// PasswordHasher is the pluggable one-way hashing capability. The hash
// primitive itself is not this service's concern.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// BcryptHasher hashes with bcrypt at a configured cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher; out-of-range costs fall back to the
// bcrypt default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt digest of plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches the stored digest.
func (h *BcryptHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

const specialChars = "!@#$%^&*(),.?\":{}|<>_-+=[]\\;'/`~"

// CheckPasswordStrength validates a registration password. Rules are
// checked in order and the first violation is returned: minimum length,
// then an uppercase letter, then a special character.
func CheckPasswordStrength(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters long", nil)
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return apperrors.NewValidationError("password must contain at least one uppercase letter", nil)
	}
	if !strings.ContainsAny(password, specialChars) {
		return apperrors.NewValidationError("password must contain at least one special character", nil)
	}
	return nil
}
