package handlers

import (
	"time"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/domain"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

func parseDate(raw, field string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date", map[string]any{field: raw})
	}
	return parsed, nil
}

func parseOptionalDate(raw *string, field string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := parseDate(*raw, field)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(dateLayout)
	return &formatted
}

func userSummary(user *domain.User) dto.UserSummary {
	return dto.UserSummary{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
		ClubID:    user.ClubID,
	}
}

func clubSummary(club *domain.Club) dto.ClubSummary {
	return dto.ClubSummary{
		ClubID:      club.ID,
		ClubName:    club.Name,
		Description: club.Description,
	}
}

func eventSummary(event *domain.Event) dto.EventSummary {
	return dto.EventSummary{
		ID:                   event.ID,
		ClubID:               event.ClubID,
		VenueID:              event.VenueID,
		EventName:            event.Name,
		Description:          event.Description,
		EventDate:            formatDate(event.EventDate),
		EventTime:            event.EventTime,
		Deadline:             formatOptionalDate(event.Deadline),
		RegistrationFormLink: event.RegistrationFormLink,
		Hidden:               event.Hidden,
	}
}

func eventSummaries(events []domain.Event) []dto.EventSummary {
	items := make([]dto.EventSummary, 0, len(events))
	for i := range events {
		items = append(items, eventSummary(&events[i]))
	}
	return items
}

func registrationSummary(reg *domain.Registration) dto.RegistrationSummary {
	return dto.RegistrationSummary{
		ID:             reg.ID,
		Reference:      reg.Reference,
		EventID:        reg.EventID,
		UserID:         reg.UserID,
		Status:         string(reg.Status),
		FormData:       reg.FormData,
		SubmissionDate: reg.SubmissionDate,
	}
}

func registrationSummaries(regs []domain.Registration) []dto.RegistrationSummary {
	items := make([]dto.RegistrationSummary, 0, len(regs))
	for i := range regs {
		items = append(items, registrationSummary(&regs[i]))
	}
	return items
}
