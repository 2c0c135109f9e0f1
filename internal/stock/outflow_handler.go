package stock

import (
	"fmt"

	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateOutflowRequest struct {
	ProductID    uint   `json:"product_id"`  // zorunlu
	BranchID     uint   `json:"branch_id"`   // zorunlu, hedef şube
	QuantitySent uint   `json:"quantity_sent"`
	ExpiryDate   string `json:"expiry_date"` // "2006-01-02", opsiyonel
}

type OutflowResponse struct {
	ID           uint   `json:"id"`
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	BranchID     uint   `json:"branch_id"`
	BranchName   string `json:"branch_name"`
	QuantitySent uint   `json:"quantity_sent"`
	DateSent     string `json:"date_sent"`
	// sevkiyat sonrası merkez ve şube stoğu
	ProductQuantity int    `json:"product_quantity"`
	BranchQuantity  int    `json:"branch_quantity"`
	BranchStatus    string `json:"branch_status"`
}

// POST /api/admin/outflows
func CreateOutflowHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOutflowRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProductID == 0 || body.BranchID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id ve branch_id zorunludur")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", body.BranchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Şube bulunamadı (ID: %d)", body.BranchID))
		}

		expDate, err := parseOptionalDate(body.ExpiryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Son kullanma tarihi formatı 'YYYY-MM-DD' olmalı")
		}

		outflow := models.ProductOutflow{
			ProductID:    body.ProductID,
			BranchID:     body.BranchID,
			QuantitySent: body.QuantitySent,
			ExpiryDate:   expDate,
		}

		if err := RecordOutflow(database.DB, &outflow); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat kaydedilemedi")
		}

		// Sevkiyat sonrası sayaçlar
		database.DB.First(&product, product.ID)
		var bp models.BranchProduct
		database.DB.Where("branch_id = ? AND product_id = ?", body.BranchID, body.ProductID).First(&bp)

		// Audit log
		if userID, userName, err := getActor(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &branch.ID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product_outflow",
				EntityID:    outflow.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("%s şubesine sevkiyat", branch.Name),
				After:       outflow,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(OutflowResponse{
			ID:              outflow.ID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			BranchID:        branch.ID,
			BranchName:      branch.Name,
			QuantitySent:    outflow.QuantitySent,
			DateSent:        outflow.DateSent.Format("2006-01-02"),
			ProductQuantity: product.Quantity,
			BranchQuantity:  bp.Quantity,
			BranchStatus:    string(bp.Status),
		})
	}
}

// GET /api/outflows
func ListOutflowsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var outflows []models.ProductOutflow
		if err := database.DB.
			Preload("Product").
			Preload("Branch").
			Order("date_sent DESC, id DESC").
			Find(&outflows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat kayıtları listelenemedi")
		}

		res := make([]OutflowResponse, 0, len(outflows))
		for _, out := range outflows {
			res = append(res, OutflowResponse{
				ID:              out.ID,
				ProductID:       out.ProductID,
				ProductName:     out.Product.Name,
				BranchID:        out.BranchID,
				BranchName:      out.Branch.Name,
				QuantitySent:    out.QuantitySent,
				DateSent:        out.DateSent.Format("2006-01-02"),
				ProductQuantity: out.Product.Quantity,
			})
		}

		return c.JSON(res)
	}
}
