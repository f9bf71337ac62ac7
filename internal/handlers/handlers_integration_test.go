package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"decaf/internal/database"
	"decaf/internal/handlers"
	"decaf/internal/middleware"
	"decaf/internal/repositories"
	"decaf/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds the full Fiber app against a dedicated in-memory
// SQLite database. Each test gets its own database name so state never
// leaks between tests.
func setupApp(t *testing.T, dbName string) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	catRepo := repositories.NewGORMCatRepository(db)
	prefsRepo := repositories.NewGORMPreferencesRepository(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret", bcrypt.MinCost)
	recipeService := services.NewRecipeService(recipeRepo, nil) // no broker in tests
	tagService := services.NewTagService(tagRepo)
	catService := services.NewCatService(catRepo)
	prefsService := services.NewPreferencesService(prefsRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	auth := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewRecipeHandler(recipeService).RegisterRoutes(apiV1, auth)
	handlers.NewTagHandler(tagService).RegisterRoutes(apiV1)
	handlers.NewCatHandler(catService).RegisterRoutes(apiV1, auth)
	handlers.NewPreferencesHandler(prefsService).RegisterRoutes(apiV1, auth)

	return app
}

// doJSON performs a request with a JSON body and decodes the JSON
// response into a map. An empty token leaves the request unauthenticated.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints returning a JSON array.
func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (int, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

// registerAndLogin creates a user and returns their id and a session token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) (userID, token string) {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"username": username,
		"password": "longenough1",
		"pin":      "12345678",
	}, "")
	assert.Equal(t, http.StatusCreated, status)
	userID, _ = body["id"].(string)
	assert.NotEmpty(t, userID)

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": username,
		"password": "longenough1",
	}, "")
	assert.Equal(t, http.StatusOK, status)
	token, _ = body["token"].(string)
	assert.NotEmpty(t, token)

	return userID, token
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp(t, "auth_test")

	// Register.
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"username": "alice",
		"password": "longenough1",
		"pin":      "00123456",
	}, "")
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "alice", body["username"])
	assert.NotEmpty(t, body["id"])
	// Secrets never come back.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "pin")

	// Duplicate registration.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"username": "alice",
		"password": "longenough1",
		"pin":      "00123456",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Username already exists", body["error"])

	// Login with password.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "longenough1",
	}, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "user", user["role"])

	// Login with PIN sent as a JSON number; 123456 coerces to
	// "00123456", preserving the leading zeros of the stored PIN.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": "alice",
		"pin":      123456,
	}, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	// Both password and PIN.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "longenough1",
		"pin":      "00123456",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Provide either password or PIN, not both", body["error"])

	// Neither.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": "alice",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Either password or PIN is required", body["error"])

	// Wrong password and unknown username fail identically.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "wrongwrongwrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	wrongSecretMsg := body["error"]

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": "nobody",
		"password": "longenough1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, wrongSecretMsg, body["error"])
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t, "register_validation_test")

	bad := []map[string]interface{}{
		{"username": "al", "password": "longenough1", "pin": "12345678"},   // username too short
		{"username": "alice", "password": "short", "pin": "12345678"},     // password too short
		{"username": "alice", "password": "longenough1", "pin": "1234"},   // pin too short
		{"username": "alice", "password": "longenough1", "pin": "12a456x8"}, // pin non-digits
		{"username": "alice", "password": "longenough1"},                  // pin missing
	}
	for _, body := range bad {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, status, "body %v", body)
	}

	// None of the rejected registrations created a user.
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "longenough1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRecipeLifecycle(t *testing.T) {
	app := setupApp(t, "recipe_test")
	aliceID, token := registerAndLogin(t, app, "alice")

	// Create requires auth.
	recipeBody := map[string]interface{}{
		"name":              "Morning V60",
		"description":       "Light pour-over",
		"coffee_weight":     18.5,
		"water_weight":      300.0,
		"water_temperature": 93,
		"grind_size":        "medium-fine",
		"brew_time":         180,
	}
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/recipes", recipeBody, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, created := doJSON(t, app, http.MethodPost, "/api/v1/recipes", recipeBody, token)
	assert.Equal(t, http.StatusCreated, status)
	recipeID := created["id"].(string)
	assert.Equal(t, aliceID, created["created_by"])

	// Public read.
	status, fetched := doJSON(t, app, http.MethodGet, "/api/v1/recipes/"+recipeID, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Morning V60", fetched["name"])

	// Steps, inserted out of order, listed by step_order.
	for _, step := range []map[string]interface{}{
		{"recipe_id": recipeID, "step_order": 1, "command_type": "pour", "duration_sec": 30},
		{"recipe_id": recipeID, "step_order": 0, "command_type": "grind", "command_parameter": 18},
	} {
		status, _ = doJSON(t, app, http.MethodPost, "/api/v1/recipes/steps", step, token)
		assert.Equal(t, http.StatusCreated, status)
	}

	status, steps := doJSONList(t, app, http.MethodGet, "/api/v1/recipes/"+recipeID+"/steps", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, steps, 2)
	assert.Equal(t, "grind", steps[0]["command_type"])
	assert.Equal(t, "pour", steps[1]["command_type"])

	// Invalid command type.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/recipes/steps", map[string]interface{}{
		"recipe_id": recipeID, "step_order": 2, "command_type": "explode",
	}, token)
	assert.Equal(t, http.StatusBadRequest, status)

	// Partial update refreshes only supplied fields.
	status, updated := doJSON(t, app, http.MethodPut, "/api/v1/recipes/"+recipeID, map[string]interface{}{
		"water_temperature": 90,
	}, token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(90), updated["water_temperature"])
	assert.Equal(t, "Morning V60", updated["name"])

	// Delete cascades to steps.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/recipes/"+recipeID, nil, token)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/recipes/"+recipeID, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/recipes/"+recipeID+"/steps", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRecipeOwnership(t *testing.T) {
	app := setupApp(t, "ownership_test")
	_, aliceToken := registerAndLogin(t, app, "alice")
	_, bobToken := registerAndLogin(t, app, "bob")

	status, created := doJSON(t, app, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"name":              "Alice's Espresso",
		"coffee_weight":     18.0,
		"water_weight":      36.0,
		"water_temperature": 94,
		"brew_time":         28,
	}, aliceToken)
	assert.Equal(t, http.StatusCreated, status)
	recipeID := created["id"].(string)

	// Bob may not mutate Alice's recipe.
	status, _ = doJSON(t, app, http.MethodPut, "/api/v1/recipes/"+recipeID, map[string]interface{}{
		"name": "Bob's now",
	}, bobToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/recipes/"+recipeID, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, status)

	// The row is unchanged.
	status, fetched := doJSON(t, app, http.MethodGet, "/api/v1/recipes/"+recipeID, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alice's Espresso", fetched["name"])

	// Steps inherit the recipe's owner.
	status, step := doJSON(t, app, http.MethodPost, "/api/v1/recipes/steps", map[string]interface{}{
		"recipe_id": recipeID, "step_order": 0, "command_type": "grind",
	}, aliceToken)
	assert.Equal(t, http.StatusCreated, status)
	stepID := step["id"].(string)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/recipes/steps", map[string]interface{}{
		"recipe_id": recipeID, "step_order": 1, "command_type": "pour",
	}, bobToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/recipes/steps/"+stepID, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/recipes/steps/"+stepID, nil, aliceToken)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestAddTagsToRecipeIdempotent(t *testing.T) {
	app := setupApp(t, "tags_test")
	_, token := registerAndLogin(t, app, "alice")

	status, created := doJSON(t, app, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"name":              "Tagged Brew",
		"coffee_weight":     20.0,
		"water_weight":      320.0,
		"water_temperature": 92,
		"brew_time":         210,
	}, token)
	assert.Equal(t, http.StatusCreated, status)
	recipeID := created["id"].(string)

	addTags := func() []interface{} {
		status, body := doJSON(t, app, http.MethodPost, "/api/v1/tags/add-to-recipe", map[string]interface{}{
			"recipe_id": recipeID,
			"tag_names": []string{"Bold", "bold ", "Morning Brew"},
		}, "")
		assert.Equal(t, http.StatusOK, status)
		return body["tags_added"].([]interface{})
	}

	// "Bold" and "bold " normalize to the same slug; first-seen name wins.
	first := addTags()
	assert.Len(t, first, 2)
	names := map[string]string{}
	for _, entry := range first {
		tag := entry.(map[string]interface{})
		names[tag["slug"].(string)] = tag["name"].(string)
	}
	assert.Equal(t, "Bold", names["bold"])
	assert.Equal(t, "Morning Brew", names["morning-brew"])

	// A second identical call resolves to the same tag set with no
	// duplicate tag rows or junction rows.
	second := addTags()
	assert.Equal(t, first, second)

	// Empty list is rejected.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/tags/add-to-recipe", map[string]interface{}{
		"recipe_id": recipeID,
		"tag_names": []string{},
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateTag(t *testing.T) {
	app := setupApp(t, "create_tag_test")

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/tags", map[string]interface{}{
		"name": "Single Origin",
	}, "")
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Single Origin", body["name"])
	assert.Equal(t, "single-origin", body["slug"])

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/tags", map[string]interface{}{
		"name": "Single Origin",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Tag already exists", body["error"])
}

func TestUserPreferencesLifecycle(t *testing.T) {
	app := setupApp(t, "prefs_test")
	_, token := registerAndLogin(t, app, "alice")

	// Requires auth.
	status, _ := doJSON(t, app, http.MethodGet, "/api/v1/user-preferences", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// Nothing yet.
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/user-preferences", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, http.MethodPut, "/api/v1/user-preferences", map[string]interface{}{
		"theme": "dark",
	}, token)
	assert.Equal(t, http.StatusNotFound, status)

	// Create with one override; everything else takes its default.
	status, prefs := doJSON(t, app, http.MethodPost, "/api/v1/user-preferences", map[string]interface{}{
		"units": "imperial",
	}, token)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "imperial", prefs["units"])
	assert.Equal(t, "medium", prefs["strength_preference"])
	assert.Equal(t, float64(300), prefs["default_cup_size"])
	assert.Equal(t, true, prefs["notifications_brewed"])

	// Second create conflicts.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/user-preferences", map[string]interface{}{}, token)
	assert.Equal(t, http.StatusConflict, status)

	// Partial update.
	status, prefs = doJSON(t, app, http.MethodPut, "/api/v1/user-preferences", map[string]interface{}{
		"strength_preference": "strong",
		"notifications_brewed": false,
	}, token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "strong", prefs["strength_preference"])
	assert.Equal(t, false, prefs["notifications_brewed"])
	assert.Equal(t, "imperial", prefs["units"]) // untouched

	// Delete, then gone.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/user-preferences", nil, token)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/user-preferences", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCatsCRUD(t *testing.T) {
	app := setupApp(t, "cats_test")
	_, token := registerAndLogin(t, app, "alice")

	// Reads are public, writes are not.
	status, _ := doJSONList(t, app, http.MethodGet, "/api/v1/cats", "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/cats", map[string]interface{}{
		"name": "Mocha", "type": "bengal",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, cat := doJSON(t, app, http.MethodPost, "/api/v1/cats", map[string]interface{}{
		"name": "Mocha", "type": "bengal",
	}, token)
	assert.Equal(t, http.StatusCreated, status)
	catID := cat["id"].(string)

	// Breed must be in the enum.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/cats", map[string]interface{}{
		"name": "Pixel", "type": "tabby",
	}, token)
	assert.Equal(t, http.StatusBadRequest, status)

	// Multi-word breed value.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/cats", map[string]interface{}{
		"name": "Biscuit", "type": "maine coon",
	}, token)
	assert.Equal(t, http.StatusCreated, status)

	status, fetched := doJSON(t, app, http.MethodGet, "/api/v1/cats/"+catID, nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Mocha", fetched["name"])

	status, updated := doJSON(t, app, http.MethodPut, "/api/v1/cats/"+catID, map[string]interface{}{
		"name": "Mocha II",
	}, token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Mocha II", updated["name"])
	assert.Equal(t, "bengal", updated["type"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/cats/"+catID, nil, token)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/cats/"+catID, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRecipesByUser(t *testing.T) {
	app := setupApp(t, "by_user_test")
	aliceID, aliceToken := registerAndLogin(t, app, "alice")
	_, bobToken := registerAndLogin(t, app, "bob")

	for _, name := range []string{"One", "Two"} {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
			"name":              name,
			"coffee_weight":     15.0,
			"water_weight":      250.0,
			"water_temperature": 90,
			"brew_time":         120,
		}, aliceToken)
		assert.Equal(t, http.StatusCreated, status)
	}

	status, recipes := doJSONList(t, app, http.MethodGet, "/api/v1/recipes/user/"+aliceID, bobToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, recipes, 2)
	for _, recipe := range recipes {
		assert.Equal(t, aliceID, recipe["created_by"])
	}
}
