package dto

import "time"

// RegisterForEventRequest payload for applying to an event.
type RegisterForEventRequest struct {
	EventID int64 `json:"event_id"`
}

// FormDataRequest payload for submitting recruitment form data.
type FormDataRequest struct {
	RegID    int64  `json:"reg_id"`
	FormData string `json:"form_data"`
}

// RegistrationSummary is the registration shape returned to clients.
type RegistrationSummary struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	EventID        int64     `json:"event_id"`
	UserID         int64     `json:"user_id"`
	Status         string    `json:"status"`
	FormData       *string   `json:"form_data,omitempty"`
	SubmissionDate time.Time `json:"submission_date"`
}
