package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"easyshop/internal/handlers"
	"easyshop/internal/middleware"
	"easyshop/internal/models"
	"easyshop/internal/repositories"
	"easyshop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "integration-test-secret"

// setupApp wires the full HTTP surface over an in-memory database, mirroring
// the production composition but without a message broker.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	uow := repositories.NewGORMUnitOfWork(db)

	authService := services.NewAuthService(userRepo, nil, testJWTSecret)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(uow, orderRepo, userRepo, nil)
	reviewService := services.NewReviewService(repositories.NewGORMReviewRepository(db), productRepo)

	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	categoryHandler.RegisterRoutes(apiV1)
	reviewHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)

	admin := apiV1.Group("", middleware.AuthRequired(authService), middleware.AdminRequired())
	productHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	return app, db
}

func performRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeSlice(t *testing.T, resp *http.Response) []interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func registerUser(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()
	resp := performRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeMap(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createAdmin seeds an admin account directly, since registration always
// produces customers, and logs it in through the API.
func createAdmin(t *testing.T, app *fiber.App, db *gorm.DB, email, password string) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(&models.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}))

	resp := performRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createProduct(t *testing.T, app *fiber.App, adminToken, name string, price float64, quantity int) string {
	t.Helper()
	resp := performRequest(t, app, "POST", "/api/v1/products", adminToken, fiber.Map{
		"name":     name,
		"price":    price,
		"quantity": quantity,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeMap(t, resp)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func getProductQuantity(t *testing.T, app *fiber.App, productID string) int {
	t.Helper()
	resp := performRequest(t, app, "GET", "/api/v1/products/"+productID, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	return int(body["quantity"].(float64))
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	resp := performRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])
	// The password hash never leaves the server.
	assert.NotContains(t, user, "password")

	resp = performRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email_taken", decodeMap(t, resp)["code"])

	resp = performRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := decodeMap(t, resp)["token"].(string)

	resp = performRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_credentials", decodeMap(t, resp)["code"])

	resp = performRequest(t, app, "GET", "/api/v1/auth/me", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", decodeMap(t, resp)["email"])

	resp = performRequest(t, app, "GET", "/api/v1/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_PasswordCrossesTheWire(t *testing.T) {
	app, _ := setupApp(t)

	// The account model hides its password hash from JSON, so registration
	// must read the plaintext through the request DTO. Logging in with the
	// registered password proves it arrived.
	resp := performRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = performRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decodeMap(t, resp)["token"])
}

func TestRegister_IgnoresRoleInBody(t *testing.T) {
	app, _ := setupApp(t)

	resp := performRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Mallory",
		"email":    "mallory@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeMap(t, resp)
	token := body["token"].(string)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "customer", user["role"])

	// The token carries the customer role, so admin routes stay closed.
	resp = performRequest(t, app, "GET", "/api/v1/admin/orders", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRegister_ValidationFailures(t *testing.T) {
	app, _ := setupApp(t)

	resp := performRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Alice",
		"email":    "not-an-email",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = performRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProductRoutesAuthorization(t *testing.T) {
	app, db := setupApp(t)
	customerToken := registerUser(t, app, "Alice", "alice@example.com", "secret123")
	adminToken := createAdmin(t, app, db, "admin@example.com", "admin-secret")

	payload := fiber.Map{"name": "Laptop", "price": 1200.0, "quantity": 3}

	resp := performRequest(t, app, "POST", "/api/v1/products", "", payload)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = performRequest(t, app, "POST", "/api/v1/products", customerToken, payload)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = performRequest(t, app, "POST", "/api/v1/products", adminToken, payload)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodeMap(t, resp)
	assert.Equal(t, true, created["in_stock"])

	// Reads stay public.
	resp = performRequest(t, app, "GET", "/api/v1/products", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeSlice(t, resp), 1)

	resp = performRequest(t, app, "GET", "/api/v1/products/"+created["id"].(string), "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = performRequest(t, app, "GET", "/api/v1/products/"+uuid.New().String(), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", decodeMap(t, resp)["code"])
}

func TestOrderLifecycle(t *testing.T) {
	app, db := setupApp(t)
	adminToken := createAdmin(t, app, db, "admin@example.com", "admin-secret")
	customerToken := registerUser(t, app, "Alice", "alice@example.com", "secret123")
	productID := createProduct(t, app, adminToken, "Laptop", 10.0, 5)

	resp := performRequest(t, app, "POST", "/api/v1/cart/items", customerToken, fiber.Map{
		"product_id": productID,
		"quantity":   2,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = performRequest(t, app, "GET", "/api/v1/cart", customerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	cart := decodeMap(t, resp)
	assert.Len(t, cart["items"], 1)

	resp = performRequest(t, app, "POST", "/api/v1/orders", customerToken, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decodeMap(t, resp)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, 20.0, order["total_price"])
	items := order["items"].([]interface{})
	assert.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "Laptop", line["product_name"])
	assert.Equal(t, 10.0, line["product_price"])

	// Placement took the stock and emptied the cart.
	assert.Equal(t, 3, getProductQuantity(t, app, productID))
	resp = performRequest(t, app, "GET", "/api/v1/cart", customerToken, nil)
	assert.Empty(t, decodeMap(t, resp)["items"])

	resp = performRequest(t, app, "GET", "/api/v1/orders", customerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeSlice(t, resp), 1)

	orderID := order["id"].(string)
	resp = performRequest(t, app, "GET", "/api/v1/orders/"+orderID, customerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Placing again with an empty cart fails cleanly.
	resp = performRequest(t, app, "POST", "/api/v1/orders", customerToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "empty_cart", decodeMap(t, resp)["code"])

	resp = performRequest(t, app, "POST", "/api/v1/orders/"+orderID+"/cancel", customerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "cancelled", decodeMap(t, resp)["status"])
	assert.Equal(t, 5, getProductQuantity(t, app, productID))

	resp = performRequest(t, app, "POST", "/api/v1/orders/"+orderID+"/cancel", customerToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_transition", decodeMap(t, resp)["code"])
}

func TestOrderInsufficientStock(t *testing.T) {
	app, db := setupApp(t)
	adminToken := createAdmin(t, app, db, "admin@example.com", "admin-secret")
	customerToken := registerUser(t, app, "Alice", "alice@example.com", "secret123")
	productID := createProduct(t, app, adminToken, "Laptop", 10.0, 1)

	resp := performRequest(t, app, "POST", "/api/v1/cart/items", customerToken, fiber.Map{
		"product_id": productID,
		"quantity":   2,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = performRequest(t, app, "POST", "/api/v1/orders", customerToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "insufficient_stock", body["code"])
	assert.Equal(t, productID, body["product_id"])

	// Nothing changed: the stock and the cart survive the failed attempt.
	assert.Equal(t, 1, getProductQuantity(t, app, productID))
	resp = performRequest(t, app, "GET", "/api/v1/cart", customerToken, nil)
	assert.Len(t, decodeMap(t, resp)["items"], 1)
}

func TestCartEndpoints(t *testing.T) {
	app, db := setupApp(t)
	adminToken := createAdmin(t, app, db, "admin@example.com", "admin-secret")
	customerToken := registerUser(t, app, "Alice", "alice@example.com", "secret123")
	productID := createProduct(t, app, adminToken, "Mouse", 25.0, 50)

	resp := performRequest(t, app, "POST", "/api/v1/cart/items", customerToken, fiber.Map{
		"product_id": productID,
		"quantity":   1,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	cart := decodeMap(t, resp)
	itemID := cart["items"].([]interface{})[0].(map[string]interface{})["id"].(string)

	resp = performRequest(t, app, "PUT", "/api/v1/cart/items/"+itemID, customerToken, fiber.Map{
		"quantity": 4,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decodeMap(t, resp)
	line := updated["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 4.0, line["quantity"])

	resp = performRequest(t, app, "POST", "/api/v1/cart/items", customerToken, fiber.Map{
		"product_id": uuid.New().String(),
		"quantity":   1,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = performRequest(t, app, "POST", "/api/v1/cart/items", customerToken, fiber.Map{
		"product_id": productID,
		"quantity":   0,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = performRequest(t, app, "DELETE", "/api/v1/cart/items/"+itemID, customerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeMap(t, resp)["items"])

	resp = performRequest(t, app, "GET", "/api/v1/cart", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminOrderManagement(t *testing.T) {
	app, db := setupApp(t)
	adminToken := createAdmin(t, app, db, "admin@example.com", "admin-secret")
	customerToken := registerUser(t, app, "Alice", "alice@example.com", "secret123")
	productID := createProduct(t, app, adminToken, "Laptop", 10.0, 5)

	resp := performRequest(t, app, "POST", "/api/v1/cart/items", customerToken, fiber.Map{
		"product_id": productID,
		"quantity":   2,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = performRequest(t, app, "POST", "/api/v1/orders", customerToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	orderID := decodeMap(t, resp)["id"].(string)

	statusPath := "/api/v1/admin/orders/" + orderID + "/status"

	resp = performRequest(t, app, "PATCH", statusPath, customerToken, fiber.Map{"status": "confirmed"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = performRequest(t, app, "PATCH", statusPath, adminToken, fiber.Map{"status": "confirmed"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmed", decodeMap(t, resp)["status"])

	// Customers can no longer cancel once the order is confirmed.
	resp = performRequest(t, app, "POST", "/api/v1/orders/"+orderID+"/cancel", customerToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_transition", decodeMap(t, resp)["code"])

	resp = performRequest(t, app, "PATCH", statusPath, adminToken, fiber.Map{"status": "bogus"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_status", decodeMap(t, resp)["code"])

	// An admin cancellation from confirmed still restores the stock.
	resp = performRequest(t, app, "PATCH", statusPath, adminToken, fiber.Map{"status": "cancelled"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, getProductQuantity(t, app, productID))

	resp = performRequest(t, app, "PATCH", statusPath, adminToken, fiber.Map{"status": "confirmed"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "locked_terminal_state", decodeMap(t, resp)["code"])

	resp = performRequest(t, app, "GET", "/api/v1/admin/orders?status=cancelled", adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	listing := decodeMap(t, resp)
	assert.Len(t, listing["orders"], 1)
	pagination := listing["pagination"].(map[string]interface{})
	assert.Equal(t, 1.0, pagination["total"])

	resp = performRequest(t, app, "GET", "/api/v1/admin/orders?status=bogus", adminToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_status", decodeMap(t, resp)["code"])

	resp = performRequest(t, app, "GET", "/api/v1/admin/orders", customerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestOrdersAreOwnerScoped(t *testing.T) {
	app, db := setupApp(t)
	adminToken := createAdmin(t, app, db, "admin@example.com", "admin-secret")
	aliceToken := registerUser(t, app, "Alice", "alice@example.com", "secret123")
	bobToken := registerUser(t, app, "Bob", "bob@example.com", "secret123")
	productID := createProduct(t, app, adminToken, "Laptop", 10.0, 5)

	resp := performRequest(t, app, "POST", "/api/v1/cart/items", aliceToken, fiber.Map{
		"product_id": productID,
		"quantity":   1,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = performRequest(t, app, "POST", "/api/v1/orders", aliceToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	orderID := decodeMap(t, resp)["id"].(string)

	resp = performRequest(t, app, "GET", "/api/v1/orders/"+orderID, bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = performRequest(t, app, "POST", "/api/v1/orders/"+orderID+"/cancel", bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = performRequest(t, app, "GET", "/api/v1/orders", bobToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeSlice(t, resp))
}

func TestReviewEndpoints(t *testing.T) {
	app, db := setupApp(t)
	adminToken := createAdmin(t, app, db, "admin@example.com", "admin-secret")
	aliceToken := registerUser(t, app, "Alice", "alice@example.com", "secret123")
	bobToken := registerUser(t, app, "Bob", "bob@example.com", "secret123")
	productID := createProduct(t, app, adminToken, "Laptop", 1200.0, 3)

	resp := performRequest(t, app, "POST", "/api/v1/reviews", aliceToken, fiber.Map{
		"product_id": productID,
		"rating":     4,
		"comment":    "Solid machine",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	review := decodeMap(t, resp)
	reviewID := review["id"].(string)
	assert.Equal(t, 4.0, review["rating"])

	// One review per user per product.
	resp = performRequest(t, app, "POST", "/api/v1/reviews", aliceToken, fiber.Map{
		"product_id": productID,
		"rating":     5,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "already_reviewed", decodeMap(t, resp)["code"])

	resp = performRequest(t, app, "POST", "/api/v1/reviews", bobToken, fiber.Map{
		"product_id": productID,
		"rating":     2,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Product reviews are public.
	resp = performRequest(t, app, "GET", "/api/v1/products/"+productID+"/reviews", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeSlice(t, resp), 2)

	resp = performRequest(t, app, "GET", "/api/v1/products/"+uuid.New().String()+"/reviews", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = performRequest(t, app, "GET", "/api/v1/reviews", aliceToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeSlice(t, resp), 1)

	// Updates are ownership-scoped and partial.
	resp = performRequest(t, app, "PUT", "/api/v1/reviews/"+reviewID, bobToken, fiber.Map{"rating": 1})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = performRequest(t, app, "PUT", "/api/v1/reviews/"+reviewID, aliceToken, fiber.Map{
		"comment": "Even better after a month",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decodeMap(t, resp)
	assert.Equal(t, 4.0, updated["rating"])
	assert.Equal(t, "Even better after a month", updated["comment"])

	resp = performRequest(t, app, "PUT", "/api/v1/reviews/"+reviewID, aliceToken, fiber.Map{"rating": 9})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = performRequest(t, app, "DELETE", "/api/v1/reviews/"+reviewID, bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = performRequest(t, app, "DELETE", "/api/v1/reviews/"+reviewID, aliceToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = performRequest(t, app, "GET", "/api/v1/products/"+productID+"/reviews", "", nil)
	assert.Len(t, decodeSlice(t, resp), 1)
}

func TestProfileUpdateAndDelete(t *testing.T) {
	app, _ := setupApp(t)
	aliceToken := registerUser(t, app, "Alice", "alice@example.com", "secret123")
	registerUser(t, app, "Bob", "bob@example.com", "secret123")

	resp := performRequest(t, app, "PUT", "/api/v1/auth/me", aliceToken, fiber.Map{
		"name":  "Alice Cooper",
		"email": "alice.new@example.com",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decodeMap(t, resp)
	assert.Equal(t, "Alice Cooper", updated["name"])
	assert.Equal(t, "alice.new@example.com", updated["email"])

	resp = performRequest(t, app, "GET", "/api/v1/auth/me", aliceToken, nil)
	assert.Equal(t, "alice.new@example.com", decodeMap(t, resp)["email"])

	// Another account's email is rejected.
	resp = performRequest(t, app, "PUT", "/api/v1/auth/me", aliceToken, fiber.Map{
		"email": "bob@example.com",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email_taken", decodeMap(t, resp)["code"])

	resp = performRequest(t, app, "PUT", "/api/v1/auth/me", aliceToken, fiber.Map{
		"email": "not-an-email",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = performRequest(t, app, "DELETE", "/api/v1/auth/me", aliceToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The token still parses, but the account behind it is gone.
	resp = performRequest(t, app, "GET", "/api/v1/auth/me", aliceToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = performRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email":    "alice.new@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
