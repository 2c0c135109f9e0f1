package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type BulkImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// POST /api/admin/products/bulk-import
// XLSX dosyasından toplu ürün yükler. Beklenen kolonlar (başlık satırı hariç):
// ad, fiyat, miktar, açılış stoğu, kategori (opsiyonel), marka (opsiyonel).
// Hatalı satırlar atlanır ve rapor edilir, geçerli satırlar yüklenir.
func BulkImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheetName := excelFile.GetSheetName(0)
		rows, err := excelFile.GetRows(sheetName)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}

		result := BulkImportResult{Errors: []string{}}

		for i, row := range rows {
			if i == 0 {
				continue // başlık satırı
			}
			rowNo := i + 1

			if len(row) < 4 {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: en az 4 kolon gerekli (ad, fiyat, miktar, açılış stoğu)", rowNo))
				continue
			}

			name := strings.TrimSpace(row[0])
			if name == "" {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: ürün adı boş", rowNo))
				continue
			}

			price, err := decimal.NewFromString(strings.TrimSpace(row[1]))
			if err != nil || price.IsNegative() {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: geçersiz fiyat '%s'", rowNo, row[1]))
				continue
			}

			quantity, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: geçersiz miktar '%s'", rowNo, row[2]))
				continue
			}

			openingStock, err := strconv.ParseUint(strings.TrimSpace(row[3]), 10, 32)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: geçersiz açılış stoğu '%s'", rowNo, row[3]))
				continue
			}

			product := models.Product{
				Name:         name,
				Price:        price,
				Quantity:     int(quantity),
				OpeningStock: uint(openingStock),
			}

			// Kategori ve marka isimle eşleştirilir, yoksa açılır
			if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
				catID, err := findOrCreateCategory(strings.TrimSpace(row[4]))
				if err == nil {
					product.CategoryID = &catID
				}
			}
			if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
				brandID, err := findOrCreateBrand(strings.TrimSpace(row[5]))
				if err == nil {
					product.BrandID = &brandID
				}
			}

			if err := database.DB.Create(&product).Error; err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: ürün kaydedilemedi", rowNo))
				continue
			}

			result.Imported++
		}

		// Audit log
		if userID, userName, err := getActorForInventory(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product",
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Toplu ürün yükleme: %d başarılı, %d atlandı", result.Imported, result.Skipped),
				After:       result,
			})
		}

		return c.JSON(result)
	}
}

func findOrCreateCategory(name string) (uint, error) {
	var category models.Category
	err := database.DB.Where("name = ?", name).First(&category).Error
	if err == nil {
		return category.ID, nil
	}
	category = models.Category{Name: name}
	if err := database.DB.Create(&category).Error; err != nil {
		return 0, err
	}
	return category.ID, nil
}

func findOrCreateBrand(name string) (uint, error) {
	var brand models.Brand
	err := database.DB.Where("name = ?", name).First(&brand).Error
	if err == nil {
		return brand.ID, nil
	}
	brand = models.Brand{Name: name}
	if err := database.DB.Create(&brand).Error; err != nil {
		return 0, err
	}
	return brand.ID, nil
}
