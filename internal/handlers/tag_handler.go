package handlers

import (
	"decaf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	tagService *services.TagService
	validate   *validator.Validate
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the tag routes.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tags := router.Group("/tags")
	tags.Post("/", h.HandleCreateTag)
	tags.Post("/add-to-recipe", h.HandleAddTagsToRecipe)
}

// CreateTagRequest represents the request body for tag creation.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddTagsToRecipeRequest represents the reconciliation request.
type AddTagsToRecipeRequest struct {
	RecipeID string   `json:"recipe_id" validate:"required"`
	TagNames []string `json:"tag_names" validate:"required"`
}

// HandleCreateTag creates a single tag.
func (h *TagHandler) HandleCreateTag(c *fiber.Ctx) error {
	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	tag, err := h.tagService.CreateTag(req.Name)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   tag.ID,
		"name": tag.Name,
		"slug": tag.Slug,
	})
}

// HandleAddTagsToRecipe resolves a list of raw tag names into tag rows
// and links them to the recipe.
func (h *TagHandler) HandleAddTagsToRecipe(c *fiber.Ctx) error {
	var req AddTagsToRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	tags, err := h.tagService.AddTagsToRecipe(req.RecipeID, req.TagNames)
	if err != nil {
		return respondError(c, err)
	}

	tagsAdded := make([]fiber.Map, 0, len(tags))
	for _, tag := range tags {
		tagsAdded = append(tagsAdded, fiber.Map{
			"id":   tag.ID,
			"name": tag.Name,
			"slug": tag.Slug,
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Tags successfully added to recipe",
		"recipe_id":  req.RecipeID,
		"tags_added": tagsAdded,
	})
}
