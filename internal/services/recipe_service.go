package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"decaf/internal/models"
	"decaf/internal/repositories"
	"decaf/pkg/rabbitmq"
)

// RecipeUpdate carries the fields of a partial recipe update. Nil fields
// are left unchanged.
type RecipeUpdate struct {
	Name             *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description      *string  `json:"description" validate:"omitempty,max=500"`
	CoffeeWeight     *float64 `json:"coffee_weight" validate:"omitempty,gte=0"`
	WaterWeight      *float64 `json:"water_weight" validate:"omitempty,gte=0"`
	WaterTemperature *int     `json:"water_temperature" validate:"omitempty,gte=0,lte=100"`
	GrindSize        *string  `json:"grind_size"`
	BrewTime         *int     `json:"brew_time" validate:"omitempty,gte=0"`
}

// RecipeStepUpdate carries the fields of a partial step update.
type RecipeStepUpdate struct {
	StepOrder        *int    `json:"step_order" validate:"omitempty,gte=0"`
	DurationSec      *int    `json:"duration_sec" validate:"omitempty,gte=0"`
	CommandType      *string `json:"command_type" validate:"omitempty,oneof=move grind pour wait measure other"`
	CommandParameter *int    `json:"command_parameter"`
}

// RecipeService handles recipe and recipe-step CRUD with ownership
// checks, and publishes brew events when a message client is wired.
type RecipeService struct {
	recipeRepo repositories.RecipeRepository
	mqClient   *rabbitmq.Client
}

// NewRecipeService creates a new RecipeService. mqClient may be nil, in
// which case event publishing is skipped.
func NewRecipeService(recipeRepo repositories.RecipeRepository, mqClient *rabbitmq.Client) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		mqClient:   mqClient,
	}
}

// GetAllRecipes retrieves all recipes.
func (s *RecipeService) GetAllRecipes() ([]models.Recipe, error) {
	return s.recipeRepo.GetAll()
}

// GetRecipeByID retrieves a single recipe.
func (s *RecipeService) GetRecipeByID(id string) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NotFoundError(fmt.Sprintf("Recipe with ID %s not found", id))
		}
		return nil, err
	}
	return recipe, nil
}

// GetRecipesByUser retrieves the recipes created by the given user.
func (s *RecipeService) GetRecipesByUser(userID string) ([]models.Recipe, error) {
	return s.recipeRepo.GetByUser(userID)
}

// CreateRecipe creates a recipe owned by userID and publishes a
// recipe.created event.
func (s *RecipeService) CreateRecipe(recipe *models.Recipe, userID string) error {
	if userID != "" {
		recipe.CreatedBy = &userID
	}
	if err := s.recipeRepo.Create(recipe); err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	s.publishEvent("recipe.created", map[string]interface{}{
		"recipe_id":  recipe.ID,
		"name":       recipe.Name,
		"created_by": recipe.CreatedBy,
	})

	return nil
}

// UpdateRecipe applies a partial update. Owned recipes may only be
// mutated by their owner.
func (s *RecipeService) UpdateRecipe(id string, upd RecipeUpdate, userID string) (*models.Recipe, error) {
	recipe, err := s.GetRecipeByID(id)
	if err != nil {
		return nil, err
	}
	if !recipe.OwnedBy(userID) {
		return nil, models.ForbiddenError("You are not authorized to update this recipe")
	}

	if upd.Name != nil {
		recipe.Name = *upd.Name
	}
	if upd.Description != nil {
		recipe.Description = *upd.Description
	}
	if upd.CoffeeWeight != nil {
		recipe.CoffeeWeight = *upd.CoffeeWeight
	}
	if upd.WaterWeight != nil {
		recipe.WaterWeight = *upd.WaterWeight
	}
	if upd.WaterTemperature != nil {
		recipe.WaterTemperature = *upd.WaterTemperature
	}
	if upd.GrindSize != nil {
		recipe.GrindSize = *upd.GrindSize
	}
	if upd.BrewTime != nil {
		recipe.BrewTime = *upd.BrewTime
	}
	recipe.UpdatedAt = time.Now()

	if err := s.recipeRepo.Update(recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

// DeleteRecipe removes a recipe and, by cascade, its steps and tag
// links. Owned recipes may only be deleted by their owner.
func (s *RecipeService) DeleteRecipe(id string, userID string) error {
	recipe, err := s.GetRecipeByID(id)
	if err != nil {
		return err
	}
	if !recipe.OwnedBy(userID) {
		return models.ForbiddenError("You are not authorized to delete this recipe")
	}

	if err := s.recipeRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.publishEvent("recipe.deleted", map[string]interface{}{
		"recipe_id": id,
	})

	return nil
}

// GetRecipeSteps lists a recipe's steps in presentation order. The
// recipe itself must exist.
func (s *RecipeService) GetRecipeSteps(recipeID string) ([]models.RecipeStep, error) {
	if _, err := s.GetRecipeByID(recipeID); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetStepsByRecipe(recipeID)
}

// GetStepByID retrieves a single recipe step.
func (s *RecipeService) GetStepByID(id string) (*models.RecipeStep, error) {
	step, err := s.recipeRepo.GetStepByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NotFoundError(fmt.Sprintf("Recipe step with ID %s not found", id))
		}
		return nil, err
	}
	return step, nil
}

// CreateStep adds a step to a recipe. A step's owner is its recipe's
// owner, so the parent recipe's authorization check applies.
func (s *RecipeService) CreateStep(step *models.RecipeStep, userID string) error {
	recipe, err := s.GetRecipeByID(step.RecipeID)
	if err != nil {
		return err
	}
	if !recipe.OwnedBy(userID) {
		return models.ForbiddenError("You are not authorized to add steps to this recipe")
	}
	if err := s.recipeRepo.CreateStep(step); err != nil {
		return fmt.Errorf("failed to create step: %w", err)
	}
	return nil
}

// UpdateStep applies a partial update to a step, authorized through the
// parent recipe.
func (s *RecipeService) UpdateStep(id string, upd RecipeStepUpdate, userID string) (*models.RecipeStep, error) {
	step, err := s.GetStepByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeStepMutation(step, userID, "update"); err != nil {
		return nil, err
	}

	if upd.StepOrder != nil {
		step.StepOrder = *upd.StepOrder
	}
	if upd.DurationSec != nil {
		step.DurationSec = upd.DurationSec
	}
	if upd.CommandType != nil {
		step.CommandType = *upd.CommandType
	}
	if upd.CommandParameter != nil {
		step.CommandParameter = upd.CommandParameter
	}
	step.UpdatedAt = time.Now()

	if err := s.recipeRepo.UpdateStep(step); err != nil {
		return nil, fmt.Errorf("failed to update step: %w", err)
	}
	return step, nil
}

// DeleteStep removes a step, authorized through the parent recipe.
func (s *RecipeService) DeleteStep(id string, userID string) error {
	step, err := s.GetStepByID(id)
	if err != nil {
		return err
	}
	if err := s.authorizeStepMutation(step, userID, "delete"); err != nil {
		return err
	}
	if err := s.recipeRepo.DeleteStep(id); err != nil {
		return fmt.Errorf("failed to delete step: %w", err)
	}
	return nil
}

func (s *RecipeService) authorizeStepMutation(step *models.RecipeStep, userID, action string) error {
	recipe, err := s.GetRecipeByID(step.RecipeID)
	if err != nil {
		return err
	}
	if !recipe.OwnedBy(userID) {
		return models.ForbiddenError(fmt.Sprintf("You are not authorized to %s steps for this recipe", action))
	}
	return nil
}

// publishEvent sends a brew event, logging instead of failing the
// request when the broker is unavailable.
func (s *RecipeService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	payload["event"] = event
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.mqClient.Publish("", rabbitmq.BrewEventsQueue, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
