package repositories

import "decaf/internal/models"

// RecipeRepository defines data access for recipes and their steps.
// Steps belong to the recipe aggregate: deleting a recipe removes its
// steps and tag links.
type RecipeRepository interface {
	GetAll() ([]models.Recipe, error)
	GetByID(id string) (*models.Recipe, error)
	GetByUser(userID string) ([]models.Recipe, error)
	Create(recipe *models.Recipe) error
	Update(recipe *models.Recipe) error
	Delete(id string) error

	GetStepsByRecipe(recipeID string) ([]models.RecipeStep, error)
	GetStepByID(id string) (*models.RecipeStep, error)
	CreateStep(step *models.RecipeStep) error
	UpdateStep(step *models.RecipeStep) error
	DeleteStep(id string) error
}
