package models

import "time"

// ProductOutflow: Merkez depodan şubeye sevkiyat. Defter kaydıdır: kayıt
// sırasında merkez stok azalır, şube stoğu artar (yoksa açılır).
type ProductOutflow struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"index;not null"`
	Product   Product
	BranchID  uint `gorm:"index;not null"`
	Branch    Branch

	QuantitySent uint       `gorm:"not null"`
	ExpiryDate   *time.Time // opsiyonel

	// Sunucu tarafından kayıt anında atanır
	DateSent time.Time `gorm:"index;not null"`

	CreatedAt time.Time
}
