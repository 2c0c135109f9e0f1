package models

import (
	"time"

	"gorm.io/gorm"
)

type Branch struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:255;not null"`
	Location       string `gorm:"type:text"`
	BranchCode     string `gorm:"size:50;uniqueIndex"` // otomatik üretilir, sonradan değişmez
	ContactDetails string `gorm:"size:255"`

	// Bir kullanıcı en fazla bir şube yönetebilir. Kullanıcı silinirse null olur.
	ManagerID *uint `gorm:"uniqueIndex"`
	Manager   *User `gorm:"constraint:OnDelete:SET NULL"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Şube kodu boşsa oluşturma sırasında üret
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.BranchCode == "" {
		code, err := MintCode(tx, "branches", "branch_code", b.Name)
		if err != nil {
			return err
		}
		b.BranchCode = code
	}
	return nil
}
