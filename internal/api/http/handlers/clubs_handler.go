package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// ClubsHandler exposes the public club directory.
type ClubsHandler struct {
	clubs *service.ClubService
}

// NewClubsHandler constructs handler.
func NewClubsHandler(clubService *service.ClubService) *ClubsHandler {
	return &ClubsHandler{clubs: clubService}
}

// All GET /api/v1/clubs/all.
func (h *ClubsHandler) All(c *fiber.Ctx) error {
	clubs, err := h.clubs.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ClubSummary, 0, len(clubs))
	for i := range clubs {
		items = append(items, clubSummary(&clubs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Details GET /api/v1/clubs/:id/details.
func (h *ClubsHandler) Details(c *fiber.Ctx) error {
	details, err := h.clubs.Details(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}

	eventsWithRegs := make([]dto.EventWithRegs, 0, len(details.Events))
	for i := range details.Events {
		eventsWithRegs = append(eventsWithRegs, dto.EventWithRegs{
			Details:  eventSummary(&details.Events[i].Event),
			RegCount: details.Events[i].RegCount,
		})
	}

	faculty := make([]dto.UserSummary, 0, len(details.Faculty))
	for i := range details.Faculty {
		faculty = append(faculty, userSummary(&details.Faculty[i]))
	}

	return c.JSON(fiber.Map{"data": dto.ClubDetailsResponse{
		Club:    clubSummary(details.Club),
		Events:  eventsWithRegs,
		Faculty: faculty,
	}})
}
