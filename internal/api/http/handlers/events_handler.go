package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// EventsHandler exposes the public event catalog.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{events: eventService}
}

// List GET /api/v1/events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	events, err := h.events.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventSummaries(events)})
}

// Upcoming GET /api/v1/events/upcoming.
func (h *EventsHandler) Upcoming(c *fiber.Ctx) error {
	events, err := h.events.Upcoming(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventSummaries(events)})
}

// GetByID GET /api/v1/events/:id.
func (h *EventsHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	event, err := h.events.GetByID(c.Context(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": eventSummary(event)})
}

// ByClub GET /api/v1/events/club/:clubId.
func (h *EventsHandler) ByClub(c *fiber.Ctx) error {
	events, err := h.events.VisibleByClub(c.Context(), c.Params("clubId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventSummaries(events)})
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{param: c.Params(param)})
	}
	return id, nil
}
