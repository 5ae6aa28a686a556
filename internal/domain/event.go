package domain

import "time"

// Event is a club event open for registration.
type Event struct {
	ID                   int64
	ClubID               string
	VenueID              *string
	Name                 string
	Description          string
	EventDate            time.Time
	EventTime            *string
	Deadline             *time.Time
	RegistrationFormLink *string
	Hidden               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
