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

// AdminHandler exposes administration endpoints. Access is granted by
// the ADMIN route-class rule; admin access never goes through the club
// ownership check.
type AdminHandler struct {
	clubs  *service.ClubService
	events *service.EventService
	users  *service.UserService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(clubService *service.ClubService, eventService *service.EventService, userService *service.UserService) *AdminHandler {
	return &AdminHandler{clubs: clubService, events: eventService, users: userService}
}

// ListClubs GET /api/v1/admin/clubs.
func (h *AdminHandler) ListClubs(c *fiber.Ctx) error {
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

// AddClub POST /api/v1/admin/clubs/add.
func (h *AdminHandler) AddClub(c *fiber.Ctx) error {
	req, err := parseClubRequest(c)
	if err != nil {
		return err
	}
	club := &domain.Club{ID: req.ClubID, Name: req.ClubName, Description: req.Description}
	if err := h.clubs.Create(c.Context(), club); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": clubSummary(club)})
}

// UpdateClub PUT /api/v1/admin/clubs/:id.
func (h *AdminHandler) UpdateClub(c *fiber.Ctx) error {
	var req dto.ClubRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	club := &domain.Club{ID: c.Params("id"), Name: req.ClubName, Description: req.Description}
	if err := h.clubs.Update(c.Context(), club); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": clubSummary(club)})
}

// DeleteClub DELETE /api/v1/admin/clubs/:id.
func (h *AdminHandler) DeleteClub(c *fiber.Ctx) error {
	if err := h.clubs.Delete(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": c.Params("id")}})
}

// ListEvents GET /api/v1/admin/events.
func (h *AdminHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.events.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventSummaries(events)})
}

// SetEventVisibility PUT /api/v1/admin/events/:id/visibility.
func (h *AdminHandler) SetEventVisibility(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Hidden bool `json:"hidden"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.events.SetHidden(c.Context(), id, req.Hidden); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "hidden": req.Hidden}})
}

// DeleteEvent DELETE /api/v1/admin/events/:id.
func (h *AdminHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	event, err := h.events.GetByID(c.Context(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	identity, _ := auth.IdentityFromContext(c)
	if err := h.events.Delete(c.Context(), identity, event); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": id}})
}

// ListUsers GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		items = append(items, userSummary(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AssignClub PUT /api/v1/admin/users/:id/assign.
func (h *AdminHandler) AssignClub(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Role   string `json:"role"`
		ClubID string `json:"club_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.AssignClub(c.Context(), id, req.Role, req.ClubID); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "role": req.Role, "club_id": req.ClubID}})
}

func parseClubRequest(c *fiber.Ctx) (dto.ClubRequest, error) {
	var req dto.ClubRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClubID == "" || req.ClubName == "" {
		return req, apperrors.NewValidationError("club_id and club_name required", nil)
	}
	return req, nil
}
