package inventory

import (
	"strings"

	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/auth"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"` // boşsa otomatik üretilir
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     uint            `json:"quantity"`
	OpeningStock uint            `json:"opening_stock"`
	CategoryID   *uint           `json:"category_id"`
	BrandID      *uint           `json:"brand_id"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uint            `json:"category_id"`
	BrandID     *uint            `json:"brand_id"`
	// SKU, quantity ve opening_stock güncellenemez: SKU kimliktir, quantity
	// sadece stok hareketleriyle değişir, açılış stoğu tarihi kayıttır.
}

type ProductResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	OpeningStock uint            `json:"opening_stock"`
	CategoryID   *uint           `json:"category_id"`
	BrandID      *uint           `json:"brand_id"`
	CreatedAt    string          `json:"created_at"`
}

// Yardımcı: Kullanıcı bilgilerini al (audit için)
func getActorForInventory(c *fiber.Ctx) (uint, string, error) {
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

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		Price:        p.Price,
		Quantity:     p.Quantity,
		OpeningStock: p.OpeningStock,
		CategoryID:   p.CategoryID,
		BrandID:      p.BrandID,
		CreatedAt:    p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı boş olamaz")
		}
		if body.Price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
		}

		product := models.Product{
			Name:         body.Name,
			SKU:          strings.TrimSpace(body.SKU),
			Description:  body.Description,
			Price:        body.Price,
			Quantity:     int(body.Quantity),
			OpeningStock: body.OpeningStock,
			CategoryID:   body.CategoryID,
			BrandID:      body.BrandID,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		// Audit log
		if userID, userName, err := getActorForInventory(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:     userID,
				UserName:   userName,
				EntityType: "product",
				EntityID:   product.ID,
				Action:     models.AuditActionCreate,
				After:      product,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("name").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		return c.JSON(toProductResponse(product))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		before := product

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Ürün adı boş olamaz")
			}
			// İsim değişse de SKU aynı kalır
			product.Name = name
		}
		if body.Description != nil {
			product.Description = *body.Description
		}
		if body.Price != nil {
			if body.Price.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
			}
			product.Price = *body.Price
		}
		if body.CategoryID != nil {
			product.CategoryID = body.CategoryID
		}
		if body.BrandID != nil {
			product.BrandID = body.BrandID
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		// Audit log
		if userID, userName, err := getActorForInventory(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:     userID,
				UserName:   userName,
				EntityType: "product",
				EntityID:   product.ID,
				Action:     models.AuditActionUpdate,
				Before:     before,
				After:      product,
			})
		}

		return c.JSON(toProductResponse(product))
	}
}

// DELETE /api/admin/products/:id
// Hareket kaydı (giriş/sevkiyat) olan ürün silinemez. Hasar kayıtları ürünle
// birlikte silinir, talepler kalır ama ürün referansı boşalır.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var inflowCount, outflowCount int64
		database.DB.Model(&models.ProductInflow{}).Where("product_id = ?", product.ID).Count(&inflowCount)
		database.DB.Model(&models.ProductOutflow{}).Where("product_id = ?", product.ID).Count(&outflowCount)
		if inflowCount > 0 || outflowCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Hareket kaydı olan ürün silinemez")
		}

		// Transaction başlat - tüm silme işlemlerini atomik yap
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.DamagedProduct{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.ProductRequest{}).Where("product_id = ?", product.ID).
				Update("product_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.BranchProduct{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		// Audit log
		if userID, userName, err := getActorForInventory(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:     userID,
				UserName:   userName,
				EntityType: "product",
				EntityID:   product.ID,
				Action:     models.AuditActionDelete,
				Before:     product,
			})
		}

		return c.JSON(fiber.Map{"message": "Ürün silindi"})
	}
}
