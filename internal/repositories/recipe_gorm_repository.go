package repositories

import (
	"fmt"

	"decaf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{db: db}
}

// GetAll retrieves all recipes.
func (r *GORMRecipeRepository) GetAll() ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all recipes: %w", err)
	}
	return recipes, nil
}

// GetByID retrieves a single recipe by its ID.
func (r *GORMRecipeRepository) GetByID(id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.First(&recipe, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get recipe by ID %s: %w", id, translateError(err))
	}
	return &recipe, nil
}

// GetByUser retrieves all recipes created by the given user.
func (r *GORMRecipeRepository) GetByUser(userID string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.Find(&recipes, "created_by = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get recipes for user %s: %w", userID, err)
	}
	return recipes, nil
}

// Create inserts a new recipe, assigning a fresh UUID when none is set.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if err := r.db.Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", translateError(err))
	}
	return nil
}

// Update persists all fields of an existing recipe.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe) error {
	res := r.db.Save(recipe)
	if res.Error != nil {
		return fmt.Errorf("failed to update recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("recipe %s: %w", recipe.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a recipe together with its steps and tag links in one
// transaction. Cascading here rather than relying on driver-level FK
// pragmas keeps SQLite and Postgres on identical semantics.
func (r *GORMRecipeRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RecipeStep{}, "recipe_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe steps: %w", err)
		}
		if err := tx.Delete(&models.RecipeTag{}, "recipe_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe tag links: %w", err)
		}
		res := tx.Delete(&models.Recipe{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// GetStepsByRecipe retrieves a recipe's steps in presentation order.
// Ties on step_order resolve by insertion order.
func (r *GORMRecipeRepository) GetStepsByRecipe(recipeID string) ([]models.RecipeStep, error) {
	var steps []models.RecipeStep
	err := r.db.Where("recipe_id = ?", recipeID).
		Order("step_order, created_at").
		Find(&steps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get steps for recipe %s: %w", recipeID, err)
	}
	return steps, nil
}

// GetStepByID retrieves a single recipe step by its ID.
func (r *GORMRecipeRepository) GetStepByID(id string) (*models.RecipeStep, error) {
	var step models.RecipeStep
	if err := r.db.First(&step, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get step by ID %s: %w", id, translateError(err))
	}
	return &step, nil
}

// CreateStep inserts a new recipe step.
func (r *GORMRecipeRepository) CreateStep(step *models.RecipeStep) error {
	if step.ID == "" {
		step.ID = uuid.New().String()
	}
	if err := r.db.Create(step).Error; err != nil {
		return fmt.Errorf("failed to create recipe step: %w", translateError(err))
	}
	return nil
}

// UpdateStep persists all fields of an existing step.
func (r *GORMRecipeRepository) UpdateStep(step *models.RecipeStep) error {
	res := r.db.Save(step)
	if res.Error != nil {
		return fmt.Errorf("failed to update recipe step: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("recipe step %s: %w", step.ID, ErrNotFound)
	}
	return nil
}

// DeleteStep removes a single step.
func (r *GORMRecipeRepository) DeleteStep(id string) error {
	res := r.db.Delete(&models.RecipeStep{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe step: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("recipe step %s: %w", id, ErrNotFound)
	}
	return nil
}
