package handlers

import (
	"decaf/internal/models"
	"decaf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes and recipe steps.
type RecipeHandler struct {
	recipeService *services.RecipeService
	validate      *validator.Validate
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipeService *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers recipe and step routes. Reads are public;
// mutations require the auth middleware passed in.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	recipes := router.Group("/recipes")

	// Step routes before /:id so "steps" is not captured as a recipe id.
	recipes.Get("/steps/:id", h.HandleGetStepByID)
	recipes.Post("/steps", auth, h.HandleCreateStep)
	recipes.Put("/steps/:id", auth, h.HandleUpdateStep)
	recipes.Delete("/steps/:id", auth, h.HandleDeleteStep)

	recipes.Get("/user/:id", auth, h.HandleGetRecipesByUser)

	recipes.Get("/", h.HandleGetAllRecipes)
	recipes.Get("/:id", h.HandleGetRecipeByID)
	recipes.Get("/:id/steps", h.HandleGetRecipeSteps)
	recipes.Post("/", auth, h.HandleCreateRecipe)
	recipes.Put("/:id", auth, h.HandleUpdateRecipe)
	recipes.Delete("/:id", auth, h.HandleDeleteRecipe)
}

// CreateRecipeRequest represents the request body for recipe creation.
type CreateRecipeRequest struct {
	Name             string  `json:"name" validate:"required,min=1,max=100"`
	Description      string  `json:"description" validate:"omitempty,max=500"`
	CoffeeWeight     float64 `json:"coffee_weight" validate:"gte=0"`
	WaterWeight      float64 `json:"water_weight" validate:"gte=0"`
	WaterTemperature int     `json:"water_temperature" validate:"gte=0,lte=100"`
	GrindSize        string  `json:"grind_size"`
	BrewTime         int     `json:"brew_time" validate:"gte=0"`
}

// CreateStepRequest represents the request body for step creation.
type CreateStepRequest struct {
	RecipeID         string `json:"recipe_id" validate:"required"`
	StepOrder        int    `json:"step_order" validate:"gte=0"`
	DurationSec      *int   `json:"duration_sec" validate:"omitempty,gte=0"`
	CommandType      string `json:"command_type" validate:"required,oneof=move grind pour wait measure other"`
	CommandParameter *int   `json:"command_parameter"`
}

// HandleGetAllRecipes retrieves all recipes.
func (h *RecipeHandler) HandleGetAllRecipes(c *fiber.Ctx) error {
	recipes, err := h.recipeService.GetAllRecipes()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipes)
}

// HandleGetRecipeByID retrieves a single recipe.
func (h *RecipeHandler) HandleGetRecipeByID(c *fiber.Ctx) error {
	recipe, err := h.recipeService.GetRecipeByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipe)
}

// HandleGetRecipesByUser retrieves the recipes created by a user.
func (h *RecipeHandler) HandleGetRecipesByUser(c *fiber.Ctx) error {
	recipes, err := h.recipeService.GetRecipesByUser(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipes)
}

// HandleCreateRecipe creates a recipe owned by the caller.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx) error {
	var req CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	recipe := models.Recipe{
		Name:             req.Name,
		Description:      req.Description,
		CoffeeWeight:     req.CoffeeWeight,
		WaterWeight:      req.WaterWeight,
		WaterTemperature: req.WaterTemperature,
		GrindSize:        req.GrindSize,
		BrewTime:         req.BrewTime,
	}

	if err := h.recipeService.CreateRecipe(&recipe, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleUpdateRecipe applies a partial, owner-checked update.
func (h *RecipeHandler) HandleUpdateRecipe(c *fiber.Ctx) error {
	var upd services.RecipeUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(upd); err != nil {
		return respondValidationError(c, err)
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Params("id"), upd, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipe)
}

// HandleDeleteRecipe removes a recipe and its steps.
func (h *RecipeHandler) HandleDeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteRecipe(c.Params("id"), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetRecipeSteps lists a recipe's steps in presentation order.
func (h *RecipeHandler) HandleGetRecipeSteps(c *fiber.Ctx) error {
	steps, err := h.recipeService.GetRecipeSteps(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(steps)
}

// HandleGetStepByID retrieves a single step.
func (h *RecipeHandler) HandleGetStepByID(c *fiber.Ctx) error {
	step, err := h.recipeService.GetStepByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(step)
}

// HandleCreateStep adds a step to a recipe the caller may mutate.
func (h *RecipeHandler) HandleCreateStep(c *fiber.Ctx) error {
	var req CreateStepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	step := models.RecipeStep{
		RecipeID:         req.RecipeID,
		StepOrder:        req.StepOrder,
		DurationSec:      req.DurationSec,
		CommandType:      req.CommandType,
		CommandParameter: req.CommandParameter,
	}

	if err := h.recipeService.CreateStep(&step, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(step)
}

// HandleUpdateStep applies a partial, owner-checked step update.
func (h *RecipeHandler) HandleUpdateStep(c *fiber.Ctx) error {
	var upd services.RecipeStepUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(upd); err != nil {
		return respondValidationError(c, err)
	}

	step, err := h.recipeService.UpdateStep(c.Params("id"), upd, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(step)
}

// HandleDeleteStep removes a single step.
func (h *RecipeHandler) HandleDeleteStep(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteStep(c.Params("id"), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
