package requests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shibilicv/stock-management-backend/internal/auth"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test app: JWT middleware yerine kullanıcı bilgilerini doğrudan locals'a
// yazan bir middleware kullanılır.
func newTestApp(t *testing.T, userID uint, role models.UserRole, branchID *uint) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, userID)
		c.Locals(auth.CtxUserRoleKey, role)
		c.Locals(auth.CtxBranchIDKey, branchID)
		return c.Next()
	})

	app.Post("/api/requests", CreateRequestHandler())
	app.Get("/api/requests", ListRequestsHandler())
	app.Put("/api/admin/requests/:id/status", UpdateRequestStatusHandler())

	return app
}

func setupRequestTestData(t *testing.T) (models.User, models.Branch, models.Product) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db

	user := models.User{Name: "Ali", Email: "ali@example.com", PasswordHash: "x", Role: models.RoleBranchManager}
	require.NoError(t, db.Create(&user).Error)

	branch := models.Branch{Name: "Kadıköy", ManagerID: &user.ID}
	require.NoError(t, db.Create(&branch).Error)

	product := models.Product{Name: "Widget", Quantity: 100}
	require.NoError(t, db.Create(&product).Error)

	return user, branch, product
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

func TestCreateRequestStartsPending(t *testing.T) {
	user, branch, product := setupRequestTestData(t)

	app := newTestApp(t, user.ID, models.RoleBranchManager, &branch.ID)

	resp, body := doJSON(t, app, "POST", "/api/requests", fiber.Map{
		"product_id": product.ID,
		"quantity":   15,
	})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, float64(branch.ID), body["branch_id"])
	assert.Equal(t, "Widget", body["product_name"])
}

func TestCreateRequestAdminNeedsBranch(t *testing.T) {
	_, _, product := setupRequestTestData(t)

	admin := models.User{Name: "Patron", Email: "patron@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, database.DB.Create(&admin).Error)

	app := newTestApp(t, admin.ID, models.RoleAdmin, nil)

	resp, _ := doJSON(t, app, "POST", "/api/requests", fiber.Map{
		"product_id": product.ID,
		"quantity":   5,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateRequestStatusPermissiveTransitions(t *testing.T) {
	user, branch, product := setupRequestTestData(t)

	request := models.ProductRequest{BranchID: branch.ID, ProductID: &product.ID, Quantity: 5, Status: models.RequestPending}
	require.NoError(t, database.DB.Create(&request).Error)

	app := newTestApp(t, user.ID, models.RoleAdmin, nil)
	path := fmt.Sprintf("/api/admin/requests/%d/status", request.ID)

	// pending -> fulfilled: ara adım atlanabilir
	resp, body := doJSON(t, app, "PUT", path, fiber.Map{"status": "fulfilled"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "fulfilled", body["status"])

	// fulfilled -> pending: geri dönüş de serbest
	resp, body = doJSON(t, app, "PUT", path, fiber.Map{"status": "pending"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
}

func TestUpdateRequestStatusRejectsUnknown(t *testing.T) {
	user, branch, product := setupRequestTestData(t)

	request := models.ProductRequest{BranchID: branch.ID, ProductID: &product.ID, Quantity: 5, Status: models.RequestPending}
	require.NoError(t, database.DB.Create(&request).Error)

	app := newTestApp(t, user.ID, models.RoleAdmin, nil)

	resp, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/admin/requests/%d/status", request.ID), fiber.Map{"status": "shipped"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var fresh models.ProductRequest
	require.NoError(t, database.DB.First(&fresh, "id = ?", request.ID).Error)
	assert.Equal(t, models.RequestPending, fresh.Status)
}

func TestListRequestsScopedToManagedBranch(t *testing.T) {
	user, branch, product := setupRequestTestData(t)

	other := models.Branch{Name: "Beşiktaş"}
	require.NoError(t, database.DB.Create(&other).Error)

	require.NoError(t, database.DB.Create(&models.ProductRequest{BranchID: branch.ID, ProductID: &product.ID, Quantity: 1, Status: models.RequestPending}).Error)
	require.NoError(t, database.DB.Create(&models.ProductRequest{BranchID: other.ID, ProductID: &product.ID, Quantity: 2, Status: models.RequestPending}).Error)

	app := newTestApp(t, user.ID, models.RoleBranchManager, &branch.ID)

	req := httptest.NewRequest("GET", "/api/requests", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, float64(branch.ID), list[0]["branch_id"])
}
