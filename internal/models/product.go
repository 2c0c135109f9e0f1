package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Brand struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product: Merkez depodaki ürün. Quantity merkez stok seviyesidir ve sadece
// stok hareketleri (giriş, sevkiyat, hasar) üzerinden değişir.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:255;not null"`
	SKU         string          `gorm:"size:100;uniqueIndex"` // boş gönderilirse otomatik üretilir, sonradan değişmez
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	// Merkez stok. Hasar/sevkiyat kayıtları eksiye düşürebilir (bkz. DamagedProduct),
	// bu yüzden işaretli int.
	Quantity int `gorm:"not null"`

	// Açılış stoğu; oluşturulduktan sonra değişmez
	OpeningStock uint `gorm:"not null"`

	CategoryID *uint
	Category   *Category `gorm:"constraint:OnDelete:SET NULL"`
	BrandID    *uint
	Brand      *Brand `gorm:"constraint:OnDelete:SET NULL"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SKU boşsa oluşturma sırasında üret
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.SKU == "" {
		code, err := MintCode(tx, "products", "sku", p.Name)
		if err != nil {
			return err
		}
		p.SKU = code
	}
	return nil
}
