package requests

import (
	"fmt"
	"time"

	"github.com/shibilicv/stock-management-backend/internal/audit"
	"github.com/shibilicv/stock-management-backend/internal/auth"
	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateRequestRequest struct {
	ProductID uint  `json:"product_id"` // zorunlu
	Quantity  uint  `json:"quantity"`   // talep edilen miktar
	BranchID  *uint `json:"branch_id"`  // admin için; şube müdüründe kendi şubesi kullanılır
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status"` // pending / acknowledged / fulfilled
}

type RequestResponse struct {
	ID            uint   `json:"id"`
	BranchID      uint   `json:"branch_id"`
	BranchName    string `json:"branch_name"`
	ProductID     *uint  `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      uint   `json:"quantity"`
	Status        string `json:"status"`
	DateRequested string `json:"date_requested"`
}

// Yardımcı: Kullanıcı bilgilerini al
func getUserInfoForRequest(c *fiber.Ctx) (uint, string, models.UserRole, *uint, error) {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, "", "", nil, fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
	}

	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", "", nil, fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", "", nil, fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	var branchID *uint
	if bPtr, ok := c.Locals(auth.CtxBranchIDKey).(*uint); ok && bPtr != nil {
		branchID = bPtr
	}

	return userID, user.Name, role, branchID, nil
}

func toResponse(r models.ProductRequest) RequestResponse {
	res := RequestResponse{
		ID:            r.ID,
		BranchID:      r.BranchID,
		BranchName:    r.Branch.Name,
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		Status:        string(r.Status),
		DateRequested: r.DateRequested.Format("2006-01-02 15:04:05"),
	}
	if r.Product != nil {
		res.ProductName = r.Product.Name
	}
	return res
}

// POST /api/requests
// Şube müdürü kendi şubesi adına talep açar; admin branch_id göndermek zorunda.
func CreateRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRequestRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id zorunludur")
		}

		userID, userName, role, managedBranchID, err := getUserInfoForRequest(c)
		if err != nil {
			return err
		}

		// Talebin şubesi: müdürse kendi şubesi, adminse body'den
		var branchID uint
		if role == models.RoleBranchManager {
			if managedBranchID == nil {
				return fiber.NewError(fiber.StatusForbidden, "Yönettiğiniz bir şube yok")
			}
			branchID = *managedBranchID
		} else {
			if body.BranchID == nil {
				return fiber.NewError(fiber.StatusBadRequest, "branch_id zorunludur")
			}
			branchID = *body.BranchID
		}

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", branchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Şube bulunamadı (ID: %d)", branchID))
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		request := models.ProductRequest{
			BranchID:      branchID,
			ProductID:     &product.ID,
			Quantity:      body.Quantity,
			Status:        models.RequestPending,
			DateRequested: time.Now(),
		}

		if err := database.DB.Create(&request).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep oluşturulamadı")
		}

		// Audit log
		_ = audit.WriteLog(audit.LogOptions{
			BranchID:    &branchID,
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product_request",
			EntityID:    request.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s için ürün talebi", branch.Name),
			After:       request,
		})

		request.Branch = branch
		request.Product = &product
		return c.Status(fiber.StatusCreated).JSON(toResponse(request))
	}
}

// GET /api/requests
// Admin tüm talepleri, şube müdürü sadece kendi şubesinin taleplerini görür.
func ListRequestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, _, role, managedBranchID, err := getUserInfoForRequest(c)
		if err != nil {
			return err
		}

		q := database.DB.
			Preload("Branch").
			Preload("Product").
			Order("date_requested DESC, id DESC")

		if role == models.RoleBranchManager {
			if managedBranchID == nil {
				return fiber.NewError(fiber.StatusForbidden, "Yönettiğiniz bir şube yok")
			}
			q = q.Where("branch_id = ?", *managedBranchID)
		}

		var reqs []models.ProductRequest
		if err := q.Find(&reqs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talepler listelenemedi")
		}

		res := make([]RequestResponse, 0, len(reqs))
		for _, r := range reqs {
			res = append(res, toResponse(r))
		}
		return c.JSON(res)
	}
}

// PUT /api/admin/requests/:id/status
// Durum geçişlerinde sıra kontrolü yok: enum içindeki her değer her durumdan
// atanabilir (pending'den doğrudan fulfilled dahil). Enum dışı değer reddedilir.
func UpdateRequestStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateRequestStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		newStatus := models.RequestStatus(body.Status)
		if !newStatus.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "status 'pending', 'acknowledged' veya 'fulfilled' olmalı")
		}

		var request models.ProductRequest
		if err := database.DB.Preload("Branch").Preload("Product").First(&request, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Talep bulunamadı")
		}

		before := request.Status
		request.Status = newStatus
		if err := database.DB.Model(&request).Update("status", newStatus).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep güncellenemedi")
		}

		// Audit log
		if userID, userName, _, _, err := getUserInfoForRequest(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &request.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product_request",
				EntityID:    request.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Talep durumu %s -> %s", before, newStatus),
				Before:      fiber.Map{"status": before},
				After:       fiber.Map{"status": newStatus},
			})
		}

		return c.JSON(toResponse(request))
	}
}
