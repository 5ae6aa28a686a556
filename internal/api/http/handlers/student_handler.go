package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/auth"
	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// StudentHandler exposes event application endpoints. Any authenticated
// STUDENT, FACULTY or ADMIN may apply; the acting user is always taken
// from the resolved identity, never from the payload.
type StudentHandler struct {
	registrations *service.RegistrationService
}

// NewStudentHandler constructs handler.
func NewStudentHandler(registrationService *service.RegistrationService) *StudentHandler {
	return &StudentHandler{registrations: registrationService}
}

// Register POST /api/v1/student/register.
func (h *StudentHandler) Register(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.RegisterForEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EventID <= 0 {
		return apperrors.NewValidationError("event_id required", nil)
	}

	reg, err := h.registrations.Register(c.Context(), identity, req.EventID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": registrationSummary(reg)})
}

// UpdateFormData PUT /api/v1/student/update-form-data.
func (h *StudentHandler) UpdateFormData(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.FormDataRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RegID <= 0 || strings.TrimSpace(req.FormData) == "" {
		return apperrors.NewValidationError("reg_id and form_data required", nil)
	}

	if err := h.registrations.UpdateFormData(c.Context(), identity, req.RegID, req.FormData); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reg_id": req.RegID}})
}

// MyRegistrations GET /api/v1/student/my-registrations.
func (h *StudentHandler) MyRegistrations(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	regs, err := h.registrations.ListMine(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": registrationSummaries(regs)})
}
