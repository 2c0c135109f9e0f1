package auth

import (
	"github.com/shibilicv/stock-management-backend/internal/models"

	"gorm.io/gorm"
)

// ManagedBranchID: kullanıcının yönettiği şubenin ID'si; şube müdürü değilse nil
func ManagedBranchID(db *gorm.DB, userID uint) *uint {
	var branch models.Branch
	if err := db.Where("manager_id = ?", userID).First(&branch).Error; err != nil {
		return nil
	}
	id := branch.ID
	return &id
}
