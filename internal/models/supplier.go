package models

import "time"

type Supplier struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:255;not null"`
	ContactPerson string `gorm:"size:255"`
	PhoneNumber   string `gorm:"size:20"`
	Email         string `gorm:"size:100"`
	Location      string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Tedarikçi silinirse giriş kayıtları da silinir
	Inflows []ProductInflow `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
}
