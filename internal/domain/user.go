package domain

import (
	"strings"
	"time"
)

// Role enumerates account roles.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleFaculty Role = "FACULTY"
	RoleAdmin   Role = "ADMIN"
	RoleOffice  Role = "OFFICE"
)

// ParseRole canonicalizes a raw role string. This is the single
// normalization point; role values elsewhere are always canonical.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleFaculty:
		return RoleFaculty, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleOffice:
		return RoleOffice, true
	default:
		return "", false
	}
}

// User is the stored identity record.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	ClubID       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClubScope returns the club assignment, empty when absent.
func (u *User) ClubScope() string {
	if u.ClubID == nil {
		return ""
	}
	return *u.ClubID
}
