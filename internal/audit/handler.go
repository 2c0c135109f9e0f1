package audit

import (
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/audit-logs
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var logs []models.AuditLog
		if err := database.DB.Order("created_at DESC").Limit(200).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit loglar listelenemedi")
		}
		return c.JSON(logs)
	}
}
