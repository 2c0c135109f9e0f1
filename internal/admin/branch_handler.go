package admin

import (
	"strings"

	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/auth"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type BranchResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	BranchCode     string `json:"branch_code"`
	ContactDetails string `json:"contact_details"`
	ManagerID      *uint  `json:"manager_id"`
	CreatedAt      string `json:"created_at"`
}

type CreateBranchRequest struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	ContactDetails string `json:"contact_details"`
	ManagerID      *uint  `json:"manager_id"` // opsiyonel
}

type UpdateBranchRequest struct {
	Name           *string `json:"name"`
	Location       *string `json:"location"`
	ContactDetails *string `json:"contact_details"`
	// BranchCode güncellenemez: bir kez üretilen kod kimliktir
}

type CreateBranchManagerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Yardımcı: Kullanıcı bilgilerini al (audit için)
func getActorForAdmin(c *fiber.Ctx) (uint, string, error) {
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

func toBranchResponse(b models.Branch) BranchResponse {
	return BranchResponse{
		ID:             b.ID,
		Name:           b.Name,
		Location:       b.Location,
		BranchCode:     b.BranchCode,
		ContactDetails: b.ContactDetails,
		ManagerID:      b.ManagerID,
		CreatedAt:      b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ----------------------------------------
// ŞUBE CRUD
// ----------------------------------------

// POST /api/admin/branches
func CreateBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Şube adı boş olamaz")
		}

		if body.ManagerID != nil {
			var manager models.User
			if err := database.DB.First(&manager, "id = ? AND role = ?", *body.ManagerID, models.RoleBranchManager).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçerli bir şube müdürü değil")
			}
		}

		branch := models.Branch{
			Name:           body.Name,
			Location:       body.Location,
			ContactDetails: body.ContactDetails,
			ManagerID:      body.ManagerID,
		}

		if err := database.DB.Create(&branch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şube oluşturulamadı")
		}

		// Audit log
		if userID, userName, err := getActorForAdmin(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:   &branch.ID,
				UserID:     userID,
				UserName:   userName,
				EntityType: "branch",
				EntityID:   branch.ID,
				Action:     models.AuditActionCreate,
				After:      branch,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toBranchResponse(branch))
	}
}

// GET /api/branches
// Admin tüm şubeleri, şube müdürü sadece kendi şubesini görür.
func ListBranchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		q := database.DB.Order("name")
		if role == models.RoleBranchManager {
			bPtr, ok := c.Locals(auth.CtxBranchIDKey).(*uint)
			if !ok || bPtr == nil {
				return c.JSON([]BranchResponse{})
			}
			q = q.Where("id = ?", *bPtr)
		}

		var branches []models.Branch
		if err := q.Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şubeler listelenemedi")
		}

		res := make([]BranchResponse, 0, len(branches))
		for _, b := range branches {
			res = append(res, toBranchResponse(b))
		}

		return c.JSON(res)
	}
}

// GET /api/branches/:id
func GetBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şube bulunamadı")
		}

		return c.JSON(toBranchResponse(branch))
	}
}

// PUT /api/admin/branches/:id
func UpdateBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateBranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şube bulunamadı")
		}

		before := branch

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Şube adı boş olamaz")
			}
			// İsim değişse de şube kodu aynı kalır
			branch.Name = name
		}
		if body.Location != nil {
			branch.Location = *body.Location
		}
		if body.ContactDetails != nil {
			branch.ContactDetails = *body.ContactDetails
		}

		if err := database.DB.Save(&branch).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şube güncellenemedi")
		}

		// Audit log
		if userID, userName, err := getActorForAdmin(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:   &branch.ID,
				UserID:     userID,
				UserName:   userName,
				EntityType: "branch",
				EntityID:   branch.ID,
				Action:     models.AuditActionUpdate,
				Before:     before,
				After:      branch,
			})
		}

		return c.JSON(toBranchResponse(branch))
	}
}

// DELETE /api/admin/branches/:id
func DeleteBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şube bulunamadı")
		}

		// Sevkiyat geçmişi olan şube silinemez
		var outflowCount int64
		database.DB.Model(&models.ProductOutflow{}).Where("branch_id = ?", branch.ID).Count(&outflowCount)
		if outflowCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Sevkiyat geçmişi olan şube silinemez")
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("branch_id = ?", branch.ID).Delete(&models.BranchProduct{}).Error; err != nil {
				return err
			}
			if err := tx.Where("branch_id = ?", branch.ID).Delete(&models.ProductRequest{}).Error; err != nil {
				return err
			}
			return tx.Delete(&branch).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şube silinemedi")
		}

		// Audit log
		if userID, userName, err := getActorForAdmin(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:     userID,
				UserName:   userName,
				EntityType: "branch",
				EntityID:   branch.ID,
				Action:     models.AuditActionDelete,
				Before:     branch,
			})
		}

		return c.JSON(fiber.Map{"message": "Şube silindi"})
	}
}

// ----------------------------------------
// ŞUBE MÜDÜRÜ
// ----------------------------------------

// POST /api/admin/branches/:id/manager
// Şube müdürü hesabı açar ve şubeye atar. Şubenin mevcut müdürü varsa değiştirilir.
func CreateBranchManagerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şube bulunamadı")
		}

		var body CreateBranchManagerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve şifre zorunlu")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		manager := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleBranchManager,
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&manager).Error; err != nil {
				return err
			}
			return tx.Model(&branch).Update("manager_id", manager.ID).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şube müdürü oluşturulamadı")
		}

		// Audit log
		if userID, userName, err := getActorForAdmin(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &branch.ID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "user",
				EntityID:    manager.ID,
				Action:      models.AuditActionCreate,
				Description: branch.Name + " şubesine müdür atandı",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":        manager.ID,
			"name":      manager.Name,
			"email":     manager.Email,
			"role":      manager.Role,
			"branch_id": branch.ID,
		})
	}
}
