package stock

import (
	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateDamageRequest struct {
	ProductID uint   `json:"product_id"` // zorunlu
	Quantity  uint   `json:"quantity"`   // hasarlı miktar
	Reason    string `json:"reason"`     // zorunlu
}

type DamageResponse struct {
	ID           uint   `json:"id"`
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	Quantity     uint   `json:"quantity"`
	Reason       string `json:"reason"`
	DateReported string `json:"date_reported"`
	// hasar sonrası merkez stok
	ProductQuantity int `json:"product_quantity"`
}

// POST /api/admin/damages
func CreateDamageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDamageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id zorunludur")
		}
		if body.Reason == "" {
			return fiber.NewError(fiber.StatusBadRequest, "reason zorunludur")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		damage := models.DamagedProduct{
			ProductID: body.ProductID,
			Quantity:  body.Quantity,
			Reason:    body.Reason,
		}

		if err := RecordDamage(database.DB, &damage); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hasar kaydı oluşturulamadı")
		}

		database.DB.First(&product, product.ID)

		// Audit log
		if userID, userName, err := getActor(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "damaged_product",
				EntityID:    damage.ID,
				Action:      models.AuditActionCreate,
				Description: "Hasar kaydı oluşturuldu",
				After:       damage,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(DamageResponse{
			ID:              damage.ID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        damage.Quantity,
			Reason:          damage.Reason,
			DateReported:    damage.DateReported.Format("2006-01-02"),
			ProductQuantity: product.Quantity,
		})
	}
}

// GET /api/damages
func ListDamagesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var damages []models.DamagedProduct
		if err := database.DB.
			Preload("Product").
			Order("date_reported DESC, id DESC").
			Find(&damages).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hasar kayıtları listelenemedi")
		}

		res := make([]DamageResponse, 0, len(damages))
		for _, d := range damages {
			res = append(res, DamageResponse{
				ID:              d.ID,
				ProductID:       d.ProductID,
				ProductName:     d.Product.Name,
				Quantity:        d.Quantity,
				Reason:          d.Reason,
				DateReported:    d.DateReported.Format("2006-01-02"),
				ProductQuantity: d.Product.Quantity,
			})
		}

		return c.JSON(res)
	}
}
