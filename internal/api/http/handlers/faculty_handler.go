package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/auth"
	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// FacultyHandler exposes club-official endpoints. The route table
// already guarantees a FACULTY identity; every resource access below is
// additionally bound to the caller's own club through the ownership
// check.
type FacultyHandler struct {
	events        *service.EventService
	registrations *service.RegistrationService
}

// NewFacultyHandler constructs handler.
func NewFacultyHandler(eventService *service.EventService, registrationService *service.RegistrationService) *FacultyHandler {
	return &FacultyHandler{events: eventService, registrations: registrationService}
}

// AddEvent POST /api/v1/faculty/add-event.
func (h *FacultyHandler) AddEvent(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClubID == "" || req.EventName == "" || req.EventDate == "" {
		return apperrors.NewValidationError("club_id, event_name, event_date required", nil)
	}
	if err := auth.AuthorizeOwnership(identity, req.ClubID); err != nil {
		return err
	}

	input, err := eventInput(req)
	if err != nil {
		return err
	}
	event, err := h.events.Create(c.Context(), identity, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": eventSummary(event)})
}

// EventDetails GET /api/v1/faculty/event-details/:clubId/:eventName.
func (h *FacultyHandler) EventDetails(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if err := auth.AuthorizeOwnership(identity, c.Params("clubId")); err != nil {
		return err
	}

	event, err := h.events.GetByClubAndName(c.Context(), c.Params("clubId"), c.Params("eventName"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": eventSummary(event)})
}

// UpdateEvent PUT /api/v1/faculty/update-event/:eventId.
func (h *FacultyHandler) UpdateEvent(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	eventID, err := parseID(c, "eventId")
	if err != nil {
		return err
	}

	event, err := h.events.GetByID(c.Context(), eventID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.AuthorizeOwnership(identity, event.ClubID); err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := eventInput(req)
	if err != nil {
		return err
	}

	updated, err := h.events.Update(c.Context(), identity, eventID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventSummary(updated)})
}

// DeleteEvent DELETE /api/v1/faculty/delete-event/:eventId.
func (h *FacultyHandler) DeleteEvent(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	eventID, err := parseID(c, "eventId")
	if err != nil {
		return err
	}

	event, err := h.events.GetByID(c.Context(), eventID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.AuthorizeOwnership(identity, event.ClubID); err != nil {
		return err
	}

	if err := h.events.Delete(c.Context(), identity, event); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": eventID}})
}

// MyEvents GET /api/v1/faculty/my-events.
func (h *FacultyHandler) MyEvents(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if identity == nil || identity.ClubID == "" {
		return apperrors.NewForbidden("no club assigned to this account")
	}

	events, err := h.events.ListByClub(c.Context(), identity.ClubID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventSummaries(events)})
}

// Submissions GET /api/v1/faculty/submissions/:clubId.
func (h *FacultyHandler) Submissions(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if err := auth.AuthorizeOwnership(identity, c.Params("clubId")); err != nil {
		return err
	}

	regs, err := h.registrations.ListByClub(c.Context(), c.Params("clubId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": registrationSummaries(regs)})
}

// UpdateStatus PUT /api/v1/faculty/update-status/:regId.
func (h *FacultyHandler) UpdateStatus(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	regID, err := parseID(c, "regId")
	if err != nil {
		return err
	}
	status, ok := domain.ParseRegistrationStatus(c.Query("status"))
	if !ok {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": c.Query("status")})
	}

	reg, err := h.registrations.GetByID(c.Context(), regID)
	if err != nil {
		return apperrors.MapError(err)
	}
	event, err := h.events.GetByID(c.Context(), reg.EventID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.AuthorizeOwnership(identity, event.ClubID); err != nil {
		return err
	}

	if err := h.registrations.UpdateStatus(c.Context(), identity, reg, event.ClubID, status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": status}})
}

func eventInput(req dto.EventRequest) (service.EventInput, error) {
	eventDate, err := parseDate(req.EventDate, "event_date")
	if err != nil {
		return service.EventInput{}, err
	}
	deadline, err := parseOptionalDate(req.Deadline, "deadline")
	if err != nil {
		return service.EventInput{}, err
	}
	return service.EventInput{
		ClubID:               req.ClubID,
		VenueID:              req.VenueID,
		Name:                 req.EventName,
		Description:          req.Description,
		EventDate:            eventDate,
		EventTime:            req.EventTime,
		Deadline:             deadline,
		RegistrationFormLink: req.RegistrationFormLink,
	}, nil
}
