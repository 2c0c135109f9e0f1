package models

import "time"

// DamagedProduct: Hasar/zayiat kaydı. Kayıt sırasında merkez stoktan düşülür.
// Merkez stok bu yolla eksiye inebilir; şube stoğundaki gibi bir alt sınır
// kontrolü bilinçli olarak yok.
type DamagedProduct struct {
	ID        uint    `gorm:"primaryKey"`
	ProductID uint    `gorm:"index;not null"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE"`

	Quantity uint   `gorm:"not null"`
	Reason   string `gorm:"type:text;not null"`

	// Sunucu tarafından kayıt anında atanır
	DateReported time.Time `gorm:"index;not null"`

	CreatedAt time.Time
}
