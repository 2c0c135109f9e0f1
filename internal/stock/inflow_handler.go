package stock

import (
	"time"

	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/auth"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateInflowRequest struct {
	ProductID         uint   `json:"product_id"`         // zorunlu
	SupplierID        uint   `json:"supplier_id"`        // zorunlu
	QuantityReceived  uint   `json:"quantity_received"`  // alınan miktar
	ManufacturingDate string `json:"manufacturing_date"` // "2006-01-02", opsiyonel
	ExpiryDate        string `json:"expiry_date"`        // "2006-01-02", opsiyonel
}

type InflowResponse struct {
	ID               uint   `json:"id"`
	ProductID        uint   `json:"product_id"`
	ProductName      string `json:"product_name"`
	SupplierID       uint   `json:"supplier_id"`
	SupplierName     string `json:"supplier_name"`
	QuantityReceived uint   `json:"quantity_received"`
	DateReceived     string `json:"date_received"`
	// giriş sonrası merkez stok
	ProductQuantity int `json:"product_quantity"`
}

// Yardımcı: Kullanıcı bilgilerini al (audit için)
func getActor(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.Name, nil
}

// Yardımcı: opsiyonel "YYYY-MM-DD" tarihi
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// POST /api/admin/inflows
func CreateInflowHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInflowRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProductID == 0 || body.SupplierID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id ve supplier_id zorunludur")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", body.SupplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		mfgDate, err := parseOptionalDate(body.ManufacturingDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Üretim tarihi formatı 'YYYY-MM-DD' olmalı")
		}
		expDate, err := parseOptionalDate(body.ExpiryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Son kullanma tarihi formatı 'YYYY-MM-DD' olmalı")
		}

		inflow := models.ProductInflow{
			ProductID:         body.ProductID,
			SupplierID:        body.SupplierID,
			QuantityReceived:  body.QuantityReceived,
			ManufacturingDate: mfgDate,
			ExpiryDate:        expDate,
		}

		if err := RecordInflow(database.DB, &inflow); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mal girişi kaydedilemedi")
		}

		// Giriş sonrası merkez stok
		database.DB.First(&product, product.ID)

		// Audit log
		if userID, userName, err := getActor(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product_inflow",
				EntityID:    inflow.ID,
				Action:      models.AuditActionCreate,
				Description: "Mal girişi kaydedildi",
				After:       inflow,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(InflowResponse{
			ID:               inflow.ID,
			ProductID:        product.ID,
			ProductName:      product.Name,
			SupplierID:       supplier.ID,
			SupplierName:     supplier.Name,
			QuantityReceived: inflow.QuantityReceived,
			DateReceived:     inflow.DateReceived.Format("2006-01-02"),
			ProductQuantity:  product.Quantity,
		})
	}
}

// GET /api/inflows
func ListInflowsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var inflows []models.ProductInflow
		if err := database.DB.
			Preload("Product").
			Preload("Supplier").
			Order("date_received DESC, id DESC").
			Find(&inflows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Giriş kayıtları listelenemedi")
		}

		res := make([]InflowResponse, 0, len(inflows))
		for _, in := range inflows {
			res = append(res, InflowResponse{
				ID:               in.ID,
				ProductID:        in.ProductID,
				ProductName:      in.Product.Name,
				SupplierID:       in.SupplierID,
				SupplierName:     in.Supplier.Name,
				QuantityReceived: in.QuantityReceived,
				DateReceived:     in.DateReceived.Format("2006-01-02"),
				ProductQuantity:  in.Product.Quantity,
			})
		}

		return c.JSON(res)
	}
}
