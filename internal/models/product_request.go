package models

import "time"

type RequestStatus string

const (
	RequestPending      RequestStatus = "pending"
	RequestAcknowledged RequestStatus = "acknowledged"
	RequestFulfilled    RequestStatus = "fulfilled"
)

// Valid: durum enum'da tanımlı mı
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAcknowledged, RequestFulfilled:
		return true
	}
	return false
}

// ProductRequest: Şubenin merkeze ilettiği sipariş talebi. pending olarak
// açılır; acknowledged/fulfilled geçişleri yönetici tarafından yapılır.
// Durum geçişlerinde sıra zorunluluğu yok (bilinçli olarak serbest bırakıldı),
// sadece enum dışı değerler reddedilir. Talebin fulfilled olması otomatik
// sevkiyat oluşturmaz; sevkiyat ayrı bir kayıttır.
type ProductRequest struct {
	ID       uint   `gorm:"primaryKey"`
	BranchID uint   `gorm:"index;not null"`
	Branch   Branch `gorm:"constraint:OnDelete:CASCADE"`

	// Ürün silinirse talep kalır ama ürün referansı boşalır
	ProductID *uint    `gorm:"index"`
	Product   *Product `gorm:"constraint:OnDelete:SET NULL"`

	Quantity uint          `gorm:"not null"`
	Status   RequestStatus `gorm:"size:20;not null;default:pending"`

	// Sunucu tarafından kayıt anında atanır
	DateRequested time.Time `gorm:"index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
