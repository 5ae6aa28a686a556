package domain

import "time"

// RegistrationStatus tracks the lifecycle of an event application.
type RegistrationStatus string

const (
	RegistrationStatusApplied  RegistrationStatus = "APPLIED"
	RegistrationStatusApproved RegistrationStatus = "APPROVED"
	RegistrationStatusRejected RegistrationStatus = "REJECTED"
)

// ParseRegistrationStatus canonicalizes a raw status string.
func ParseRegistrationStatus(raw string) (RegistrationStatus, bool) {
	switch RegistrationStatus(raw) {
	case RegistrationStatusApplied:
		return RegistrationStatusApplied, true
	case RegistrationStatusApproved:
		return RegistrationStatusApproved, true
	case RegistrationStatusRejected:
		return RegistrationStatusRejected, true
	default:
		return "", false
	}
}

// Registration is a user's application to an event.
type Registration struct {
	ID             int64
	Reference      string
	EventID        int64
	UserID         int64
	Status         RegistrationStatus
	FormData       *string
	SubmissionDate time.Time
	CreatedAt      time.Time
}
