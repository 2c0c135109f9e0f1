package suppliers

import (
	"strings"

	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/auth"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	Location      string `json:"location"`
}

type SupplierResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	Location      string `json:"location"`
	CreatedAt     string `json:"created_at"`
}

func getActorForSupplier(c *fiber.Ctx) (uint, string, error) {
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

func toSupplierResponse(s models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		PhoneNumber:   s.PhoneNumber,
		Email:         s.Email,
		Location:      s.Location,
		CreatedAt:     s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/admin/suppliers
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi adı boş olamaz")
		}

		supplier := models.Supplier{
			Name:          body.Name,
			ContactPerson: body.ContactPerson,
			PhoneNumber:   body.PhoneNumber,
			Email:         body.Email,
			Location:      body.Location,
		}

		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi oluşturulamadı")
		}

		if userID, userName, err := getActorForSupplier(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:     userID,
				UserName:   userName,
				EntityType: "supplier",
				EntityID:   supplier.ID,
				Action:     models.AuditActionCreate,
				After:      supplier,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toSupplierResponse(supplier))
	}
}

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}

		res := make([]SupplierResponse, 0, len(suppliers))
		for _, s := range suppliers {
			res = append(res, toSupplierResponse(s))
		}

		return c.JSON(res)
	}
}

// GET /api/suppliers/:id
func GetSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		return c.JSON(toSupplierResponse(supplier))
	}
}

// PUT /api/admin/suppliers/:id
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		var body SupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		before := supplier

		if name := strings.TrimSpace(body.Name); name != "" {
			supplier.Name = name
		}
		supplier.ContactPerson = body.ContactPerson
		supplier.PhoneNumber = body.PhoneNumber
		supplier.Email = body.Email
		supplier.Location = body.Location

		if err := database.DB.Save(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi güncellenemedi")
		}

		if userID, userName, err := getActorForSupplier(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:     userID,
				UserName:   userName,
				EntityType: "supplier",
				EntityID:   supplier.ID,
				Action:     models.AuditActionUpdate,
				Before:     before,
				After:      supplier,
			})
		}

		return c.JSON(toSupplierResponse(supplier))
	}
}

// DELETE /api/admin/suppliers/:id
// Tedarikçi silinince giriş kayıtları da silinir. Ürün stokları etkilenmez,
// sadece geçmiş kaybolur.
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("supplier_id = ?", supplier.ID).Delete(&models.ProductInflow{}).Error; err != nil {
				return err
			}
			return tx.Delete(&supplier).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi silinemedi")
		}

		if userID, userName, err := getActorForSupplier(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:     userID,
				UserName:   userName,
				EntityType: "supplier",
				EntityID:   supplier.ID,
				Action:     models.AuditActionDelete,
				Before:     supplier,
			})
		}

		return c.JSON(fiber.Map{"message": "Tedarikçi silindi"})
	}
}
