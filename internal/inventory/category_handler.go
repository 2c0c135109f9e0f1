package inventory

import (
	"strings"

	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type NameRequest struct {
	Name string `json:"name"`
}

// ----------------------------------------
// KATEGORİ CRUD
// ----------------------------------------

// POST /api/admin/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı boş olamaz")
		}

		category := models.Category{Name: body.Name}
		if err := database.DB.Create(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}
		return c.JSON(categories)
	}
}

// PUT /api/admin/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı boş olamaz")
		}

		var category models.Category
		if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		category.Name = body.Name
		if err := database.DB.Save(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori güncellenemedi")
		}

		return c.JSON(category)
	}
}

// DELETE /api/admin/categories/:id
// Kategoriye bağlı ürünler silinmez, kategori referansları boşalır.
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var category models.Category
		if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		if err := database.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün referansları temizlenemedi")
		}

		if err := database.DB.Delete(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Kategori silindi"})
	}
}

// ----------------------------------------
// MARKA CRUD
// ----------------------------------------

// POST /api/admin/brands
func CreateBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Marka adı boş olamaz")
		}

		brand := models.Brand{Name: body.Name}
		if err := database.DB.Create(&brand).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Marka oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(brand)
	}
}

// GET /api/brands
func ListBrandsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var brands []models.Brand
		if err := database.DB.Order("name").Find(&brands).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Markalar listelenemedi")
		}
		return c.JSON(brands)
	}
}

// DELETE /api/admin/brands/:id
func DeleteBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var brand models.Brand
		if err := database.DB.First(&brand, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Marka bulunamadı")
		}

		if err := database.DB.Model(&models.Product{}).Where("brand_id = ?", brand.ID).
			Update("brand_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün referansları temizlenemedi")
		}

		if err := database.DB.Delete(&brand).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Marka silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Marka silindi"})
	}
}
