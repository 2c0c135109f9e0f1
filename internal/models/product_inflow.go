package models

import "time"

// ProductInflow: Tedarikçiden merkez depoya mal girişi. Defter kaydıdır:
// oluşturulduktan sonra değiştirilmez, merkez stoğu kayıt sırasında artar.
type ProductInflow struct {
	ID         uint `gorm:"primaryKey"`
	ProductID  uint `gorm:"index;not null"`
	Product    Product
	SupplierID uint `gorm:"index;not null"`
	Supplier   Supplier

	QuantityReceived  uint       `gorm:"not null"`
	ManufacturingDate *time.Time // opsiyonel
	ExpiryDate        *time.Time // opsiyonel

	// Sunucu tarafından kayıt anında atanır
	DateReceived time.Time `gorm:"index;not null"`

	CreatedAt time.Time
}
