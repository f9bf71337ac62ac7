package handlers

import (
	"decaf/internal/models"
	"decaf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatHandler handles HTTP requests for cats.
type CatHandler struct {
	catService *services.CatService
	validate   *validator.Validate
}

// NewCatHandler creates a new CatHandler.
func NewCatHandler(catService *services.CatService) *CatHandler {
	return &CatHandler{
		catService: catService,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the cat routes. Reads are public; mutations
// require the auth middleware passed in.
func (h *CatHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	cats := router.Group("/cats")
	cats.Get("/", h.HandleGetAllCats)
	cats.Get("/:id", h.HandleGetCatByID)
	cats.Post("/", auth, h.HandleCreateCat)
	cats.Put("/:id", auth, h.HandleUpdateCat)
	cats.Delete("/:id", auth, h.HandleDeleteCat)
}

// CreateCatRequest represents the request body for cat creation.
type CreateCatRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Type string `json:"type" validate:"required,oneof=persian siamese 'maine coon' bengal ragdoll other"`
}

// HandleGetAllCats retrieves all cats.
func (h *CatHandler) HandleGetAllCats(c *fiber.Ctx) error {
	cats, err := h.catService.GetAllCats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cats)
}

// HandleGetCatByID retrieves a single cat.
func (h *CatHandler) HandleGetCatByID(c *fiber.Ctx) error {
	cat, err := h.catService.GetCatByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cat)
}

// HandleCreateCat creates a new cat.
func (h *CatHandler) HandleCreateCat(c *fiber.Ctx) error {
	var req CreateCatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	cat := models.Cat{Name: req.Name, Type: req.Type}
	if err := h.catService.CreateCat(&cat); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// HandleUpdateCat applies a partial update to a cat.
func (h *CatHandler) HandleUpdateCat(c *fiber.Ctx) error {
	var upd services.CatUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(upd); err != nil {
		return respondValidationError(c, err)
	}

	cat, err := h.catService.UpdateCat(c.Params("id"), upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cat)
}

// HandleDeleteCat removes a cat.
func (h *CatHandler) HandleDeleteCat(c *fiber.Ctx) error {
	if err := h.catService.DeleteCat(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
