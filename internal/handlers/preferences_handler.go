package handlers

import (
	"decaf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PreferencesHandler handles HTTP requests for the caller's own
// preferences row.
type PreferencesHandler struct {
	prefsService *services.PreferencesService
	validate     *validator.Validate
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(prefsService *services.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{
		prefsService: prefsService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the preferences routes; all require auth.
func (h *PreferencesHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	prefs := router.Group("/user-preferences")
	prefs.Get("/", auth, h.HandleGetPreferences)
	prefs.Post("/", auth, h.HandleCreatePreferences)
	prefs.Put("/", auth, h.HandleUpdatePreferences)
	prefs.Delete("/", auth, h.HandleDeletePreferences)
}

// HandleGetPreferences returns the caller's preferences.
func (h *PreferencesHandler) HandleGetPreferences(c *fiber.Ctx) error {
	prefs, err := h.prefsService.GetPreferences(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(prefs)
}

// HandleCreatePreferences creates the caller's preferences row.
func (h *PreferencesHandler) HandleCreatePreferences(c *fiber.Ctx) error {
	var input services.PreferencesInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	prefs, err := h.prefsService.CreatePreferences(currentUserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(prefs)
}

// HandleUpdatePreferences applies a partial update to the caller's row.
func (h *PreferencesHandler) HandleUpdatePreferences(c *fiber.Ctx) error {
	var input services.PreferencesInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	prefs, err := h.prefsService.UpdatePreferences(currentUserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(prefs)
}

// HandleDeletePreferences removes the caller's preferences row.
func (h *PreferencesHandler) HandleDeletePreferences(c *fiber.Ctx) error {
	if err := h.prefsService.DeletePreferences(currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
