package inventory

import (
	"errors"

	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/auth"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateBranchProductRequest struct {
	Quantity *int    `json:"quantity"` // doğrudan sayım düzeltmesi; eksi değer reddedilir
	Status   *string `json:"status"`   // active / inactive
}

type BranchProductResponse struct {
	ID          uint   `json:"id"`
	BranchID    uint   `json:"branch_id"`
	BranchName  string `json:"branch_name"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
	LastUpdated string `json:"last_updated"`
}

func toBranchProductResponse(bp models.BranchProduct) BranchProductResponse {
	return BranchProductResponse{
		ID:          bp.ID,
		BranchID:    bp.BranchID,
		BranchName:  bp.Branch.Name,
		ProductID:   bp.ProductID,
		ProductName: bp.Product.Name,
		ProductSKU:  bp.Product.SKU,
		Quantity:    bp.Quantity,
		Status:      string(bp.Status),
		LastUpdated: bp.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/branch-products
// Admin tüm şubeleri (istenirse ?branch_id= ile daraltır), şube müdürü sadece
// kendi şubesini görür.
func ListBranchProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		q := database.DB.Preload("Branch").Preload("Product")

		if role == models.RoleBranchManager {
			bPtr, ok := c.Locals(auth.CtxBranchIDKey).(*uint)
			if !ok || bPtr == nil {
				return fiber.NewError(fiber.StatusForbidden, "Yönettiğiniz bir şube yok")
			}
			q = q.Where("branch_id = ?", *bPtr)
		} else if branchID := c.QueryInt("branch_id"); branchID > 0 {
			q = q.Where("branch_id = ?", branchID)
		}

		var bps []models.BranchProduct
		if err := q.Find(&bps).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şube stokları listelenemedi")
		}

		res := make([]BranchProductResponse, 0, len(bps))
		for _, bp := range bps {
			res = append(res, toBranchProductResponse(bp))
		}
		return c.JSON(res)
	}
}

// PUT /api/branch-products/:id
// Sayım düzeltmesi / durum değişikliği. Eksi miktar kayıt edilmeden reddedilir,
// kayıtlı değer değişmez.
func UpdateBranchProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateBranchProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var bp models.BranchProduct
		if err := database.DB.Preload("Branch").Preload("Product").First(&bp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şube stok kaydı bulunamadı")
		}

		// Şube müdürü sadece kendi şubesinin kaydını güncelleyebilir
		if role, ok := c.Locals(auth.CtxUserRoleKey).(models.UserRole); ok && role == models.RoleBranchManager {
			bPtr, ok := c.Locals(auth.CtxBranchIDKey).(*uint)
			if !ok || bPtr == nil || *bPtr != bp.BranchID {
				return fiber.NewError(fiber.StatusForbidden, "Bu şube için yetkiniz yok")
			}
		}

		before := bp

		if body.Quantity != nil {
			bp.Quantity = *body.Quantity
		}
		if body.Status != nil {
			status := models.BranchProductStatus(*body.Status)
			if status != models.BranchProductActive && status != models.BranchProductInactive {
				return fiber.NewError(fiber.StatusBadRequest, "status 'active' veya 'inactive' olmalı")
			}
			bp.Status = status
		}

		if err := database.DB.Save(&bp).Error; err != nil {
			if errors.Is(err, models.ErrNegativeBranchStock) {
				return fiber.NewError(fiber.StatusBadRequest, "Şube stoğu eksiye düşemez")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Şube stok kaydı güncellenemedi")
		}

		// Audit log
		if userID, userName, err := getActorForInventory(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:   &bp.BranchID,
				UserID:     userID,
				UserName:   userName,
				EntityType: "branch_product",
				EntityID:   bp.ID,
				Action:     models.AuditActionUpdate,
				Before:     fiber.Map{"quantity": before.Quantity, "status": before.Status},
				After:      fiber.Map{"quantity": bp.Quantity, "status": bp.Status},
			})
		}

		return c.JSON(toBranchProductResponse(bp))
	}
}
