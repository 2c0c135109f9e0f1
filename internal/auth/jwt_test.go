package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/shibilicv/stock-management-backend/internal/config"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret!"

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}

	branchID := uint(7)
	user := models.User{ID: 42, Email: "ali@example.com", Role: models.RoleBranchManager}

	token, err := GenerateToken(cfg.JWTSecret, &user, &branchID)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(JWTMiddleware(cfg))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		uid := c.Locals(CtxUserIDKey).(uint)
		role := c.Locals(CtxUserRoleKey).(models.UserRole)
		bID, _ := c.Locals(CtxBranchIDKey).(*uint)

		assert.Equal(t, uint(42), uid)
		assert.Equal(t, models.RoleBranchManager, role)
		require.NotNil(t, bID)
		assert.Equal(t, uint(7), *bID)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsBadToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New()
	app.Use(JWTMiddleware(cfg))
	app.Get("/whoami", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	// Header yok
	req := httptest.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Yanlış secret ile imzalanmış token
	user := models.User{ID: 1, Email: "x@example.com", Role: models.RoleAdmin}
	badToken, err := GenerateToken("wrong-secret-wrong-secret-wrong-sec!", &user, nil)
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+badToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(CtxUserRoleKey, models.RoleBranchManager)
		return c.Next()
	})
	app.Get("/admin-only", RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/any", RequireRole(models.RoleAdmin, models.RoleBranchManager), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/any", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
