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
	"strings"
	"testing"

	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// envelope mirrors the response body shape of every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
}

// setupApp sets up a Fiber app with an in-memory SQLite database and
// the full route table, mirroring the wiring in main.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	// A per-test DSN keeps each test's in-memory database isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Product{}, &models.Variant{}, &models.User{})
	assert.NoError(t, err)

	productRepo := repositories.NewGORMProductRepository(db)
	variantRepo := repositories.NewGORMVariantRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	txManager := repositories.NewGormTxManager(db)

	catalogService := services.NewCatalogService(productRepo, variantRepo, txManager, nil)
	searchService := services.NewSearchService(productRepo, variantRepo)
	authService := services.NewAuthService(userRepo, "test_jwt_secret")

	productHandler := handlers.NewProductHandler(catalogService)
	variantHandler := handlers.NewVariantHandler(catalogService)
	searchHandler := handlers.NewSearchHandler(searchService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()

	authHandler.RegisterRoutes(app)

	api := app.Group("/api")
	searchHandler.RegisterRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protected)
	variantHandler.RegisterRoutes(protected)

	app.Use(handlers.NotFoundHandler)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
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

	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	err = json.NewDecoder(resp.Body).Decode(&env)
	assert.NoError(t, err)
	return resp.StatusCode, env
}

// signIn registers a user and returns a bearer token for it.
func signIn(t *testing.T, app *fiber.App) string {
	t.Helper()

	creds := map[string]string{"email": "tester@example.com", "password": "password123"}
	status, _ := doRequest(t, app, http.MethodPost, "/signup", "", creds)
	assert.Equal(t, http.StatusOK, status)

	status, env := doRequest(t, app, http.MethodPost, "/signin", "", creds)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, env.Token)
	return env.Token
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestSignUpAndSignIn(t *testing.T) {
	app := setupApp(t)

	creds := map[string]string{"email": "user@example.com", "password": "password123"}

	status, env := doRequest(t, app, http.MethodPost, "/signup", "", creds)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "User created successfully", env.Message)

	// Duplicate registration conflicts
	status, env = doRequest(t, app, http.MethodPost, "/signup", "", creds)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)
	assert.Equal(t, "User already exists.", env.Message)

	// Successful login returns a token
	status, env = doRequest(t, app, http.MethodPost, "/signin", "", creds)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Token)

	// Wrong password is a generic 400
	status, env = doRequest(t, app, http.MethodPost, "/signin", "", map[string]string{
		"email": "user@example.com", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid user or password.", env.Message)
}

func TestCatalogRequiresAuth(t *testing.T) {
	app := setupApp(t)

	status, env := doRequest(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = doRequest(t, app, http.MethodPost, "/api/products", "", map[string]interface{}{
		"name": "x", "description": "y", "price": 1,
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// A garbage token is rejected too
	status, _ = doRequest(t, app, http.MethodGet, "/api/products", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProductVariantLifecycle(t *testing.T) {
	app := setupApp(t)
	token := signIn(t, app)

	// Create a product
	status, env := doRequest(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name":        "Shoe",
		"description": "Running shoe",
		"price":       49.99,
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)

	var product models.Product
	assert.NoError(t, json.Unmarshal(env.Data, &product))
	assert.NotEmpty(t, product.ID)
	assert.Empty(t, product.Variants)

	// Add a variant against it
	status, env = doRequest(t, app, http.MethodPost, "/api/variant", token, map[string]interface{}{
		"name":            "Red/9",
		"sku_id":          "SKU1",
		"additional_cost": 5,
		"count":           10,
		"productId":       product.ID,
	})
	assert.Equal(t, http.StatusCreated, status)

	var variant models.Variant
	assert.NoError(t, json.Unmarshal(env.Data, &variant))
	assert.NotEmpty(t, variant.ID)
	assert.Equal(t, product.ID, variant.ProductID)

	// A colliding SKU is rejected and creates no record
	status, env = doRequest(t, app, http.MethodPost, "/api/variant", token, map[string]interface{}{
		"name":            "Blue/9",
		"sku_id":          "SKU1",
		"additional_cost": 2,
		"count":           4,
		"productId":       product.ID,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SKU id already exists", env.Message)

	// The product now resolves exactly one variant
	status, env = doRequest(t, app, http.MethodGet, "/api/product/"+product.ID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	var fetched models.Product
	assert.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Len(t, fetched.Variants, 1)
	assert.Equal(t, variant.ID, fetched.Variants[0].ID)

	// Deleting the product is refused while the variant remains
	status, env = doRequest(t, app, http.MethodDelete, "/api/product/"+product.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please delete all the variants first before deleting this product.", env.Message)

	// Delete the variant, then the product
	status, _ = doRequest(t, app, http.MethodDelete, "/api/variant/"+variant.ID, token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodDelete, "/api/product/"+product.ID, token, nil)
	assert.Equal(t, http.StatusOK, status)

	// The product is gone
	status, env = doRequest(t, app, http.MethodGet, "/api/product/"+product.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No product found with the given ID.", env.Message)
}

func TestProductValidationAndUpdates(t *testing.T) {
	app := setupApp(t)
	token := signIn(t, app)

	// Missing description is rejected
	status, env := doRequest(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name": "Incomplete", "price": 10,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid data provided in the request", env.Message)

	// Missing price is rejected
	status, _ = doRequest(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name": "Incomplete", "description": "no price",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = doRequest(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name": "Lamp", "description": "Desk lamp", "price": 20,
	})
	assert.Equal(t, http.StatusCreated, status)
	var product models.Product
	assert.NoError(t, json.Unmarshal(env.Data, &product))

	// An update with no recognized fields is rejected and mutates nothing
	status, env = doRequest(t, app, http.MethodPut, "/api/product/"+product.ID, token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid data provided in the request", env.Message)

	// A price of exactly 0 is applied
	status, env = doRequest(t, app, http.MethodPut, "/api/product/"+product.ID, token, map[string]interface{}{
		"price": 0,
	})
	assert.Equal(t, http.StatusOK, status)
	var updated models.Product
	assert.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 0.0, updated.Price)
	assert.Equal(t, "Lamp", updated.Name)

	// Partial update leaves other fields alone
	status, env = doRequest(t, app, http.MethodPut, "/api/product/"+product.ID, token, map[string]interface{}{
		"name": "Floor Lamp",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Floor Lamp", updated.Name)
	assert.Equal(t, "Desk lamp", updated.Description)

	// Updating an unknown product is not found
	status, _ = doRequest(t, app, http.MethodPut, "/api/product/no-such-id", token, map[string]interface{}{
		"name": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestVariantUpdates(t *testing.T) {
	app := setupApp(t)
	token := signIn(t, app)

	_, env := doRequest(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name": "Shirt", "description": "Cotton shirt", "price": 15,
	})
	var product models.Product
	assert.NoError(t, json.Unmarshal(env.Data, &product))

	_, env = doRequest(t, app, http.MethodPost, "/api/variant", token, map[string]interface{}{
		"name": "M/White", "sku_id": "SHIRT-M-W", "additional_cost": 0, "count": 7, "productId": product.ID,
	})
	var variant models.Variant
	assert.NoError(t, json.Unmarshal(env.Data, &variant))

	// An update with no recognized fields is rejected
	status, _ := doRequest(t, app, http.MethodPut, "/api/variant/"+variant.ID, token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)

	// Stock and cost update; count of 0 is a legitimate value
	status, env = doRequest(t, app, http.MethodPut, "/api/variant/"+variant.ID, token, map[string]interface{}{
		"count": 0, "additional_cost": 1.5,
	})
	assert.Equal(t, http.StatusOK, status)
	var updated models.Variant
	assert.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 0, updated.StockCount)
	assert.Equal(t, 1.5, updated.AdditionalCost)
	assert.Equal(t, product.ID, updated.ProductID)

	// Updating an unknown variant is not found
	status, _ = doRequest(t, app, http.MethodPut, "/api/variant/no-such-id", token, map[string]interface{}{
		"count": 1,
	})
	assert.Equal(t, http.StatusNotFound, status)

	// Deleting an unknown variant is not found
	status, _ = doRequest(t, app, http.MethodDelete, "/api/variant/no-such-id", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSearch(t *testing.T) {
	app := setupApp(t)
	token := signIn(t, app)

	_, env := doRequest(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name": "Test Product", "description": "Something to find", "price": 9.99,
	})
	var product models.Product
	assert.NoError(t, json.Unmarshal(env.Data, &product))

	_, _ = doRequest(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name": "Other", "description": "Unrelated", "price": 1,
	})

	_, env = doRequest(t, app, http.MethodPost, "/api/variant", token, map[string]interface{}{
		"name": "Large", "sku_id": "TP-L", "additional_cost": 0, "count": 2, "productId": product.ID,
	})
	var variant models.Variant
	assert.NoError(t, json.Unmarshal(env.Data, &variant))

	// Search is public: no token supplied on any of these.

	// Match by product name
	status, env := doRequest(t, app, http.MethodGet, "/api/search?query=Test+Product", "", nil)
	assert.Equal(t, http.StatusOK, status)
	var results []models.Product
	assert.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 1)
	assert.Equal(t, product.ID, results[0].ID)
	assert.Len(t, results[0].Variants, 1)

	// Match is case-insensitive and substring on description
	status, env = doRequest(t, app, http.MethodGet, "/api/search?query=something", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 1)

	// Exact variant name match returns the owning product
	status, env = doRequest(t, app, http.MethodGet, "/api/search?query=Large", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 1)
	assert.Equal(t, product.ID, results[0].ID)

	// No match is reported as not found
	status, env = doRequest(t, app, http.MethodGet, "/api/search?query=zzzzz", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No products found matching the search query.", env.Message)

	// A missing query is rejected
	status, env = doRequest(t, app, http.MethodGet, "/api/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Search query is required.", env.Message)
}

func TestUnmatchedRoute(t *testing.T) {
	app := setupApp(t)

	status, env := doRequest(t, app, http.MethodGet, "/no/such/route", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid request.", env.Message)
}

func TestListProducts(t *testing.T) {
	app := setupApp(t)
	token := signIn(t, app)

	for _, p := range []map[string]interface{}{
		{"name": "Laptop", "description": "High performance laptop", "price": 1200.00},
		{"name": "Keyboard", "description": "Mechanical keyboard", "price": 75.00},
	} {
		status, _ := doRequest(t, app, http.MethodPost, "/api/products", token, p)
		assert.Equal(t, http.StatusCreated, status)
	}

	status, env := doRequest(t, app, http.MethodGet, "/api/products", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Data fetched successfully.", env.Message)

	var products []models.Product
	assert.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 2)
}
