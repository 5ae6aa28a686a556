package dto

// EventRequest payload for creating or updating an event. Dates use
// "2006-01-02"; event_time is free-form.
type EventRequest struct {
	ClubID               string  `json:"club_id"`
	VenueID              *string `json:"venue_id,omitempty"`
	EventName            string  `json:"event_name"`
	Description          string  `json:"description"`
	EventDate            string  `json:"event_date"`
	EventTime            *string `json:"event_time,omitempty"`
	Deadline             *string `json:"deadline,omitempty"`
	RegistrationFormLink *string `json:"registration_form_link,omitempty"`
}

// EventSummary is the event shape returned to clients.
type EventSummary struct {
	ID                   int64   `json:"id"`
	ClubID               string  `json:"club_id"`
	VenueID              *string `json:"venue_id,omitempty"`
	EventName            string  `json:"event_name"`
	Description          string  `json:"description"`
	EventDate            string  `json:"event_date"`
	EventTime            *string `json:"event_time,omitempty"`
	Deadline             *string `json:"deadline,omitempty"`
	RegistrationFormLink *string `json:"registration_form_link,omitempty"`
	Hidden               bool    `json:"hidden"`
}
