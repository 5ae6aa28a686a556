package dto

// ClubRequest payload for creating or updating a club.
type ClubRequest struct {
	ClubID      string `json:"club_id"`
	ClubName    string `json:"club_name"`
	Description string `json:"description"`
}

// ClubSummary is the club shape returned to clients.
type ClubSummary struct {
	ClubID      string `json:"club_id"`
	ClubName    string `json:"club_name"`
	Description string `json:"description"`
}

// ClubDetailsResponse aggregates the public club page.
type ClubDetailsResponse struct {
	Club    ClubSummary     `json:"club"`
	Events  []EventWithRegs `json:"events"`
	Faculty []UserSummary   `json:"faculty"`
}

// EventWithRegs pairs event details with a registration count.
type EventWithRegs struct {
	Details  EventSummary `json:"details"`
	RegCount int64        `json:"reg_count"`
}
