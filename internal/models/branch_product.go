package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type BranchProductStatus string

const (
	BranchProductActive   BranchProductStatus = "active"
	BranchProductInactive BranchProductStatus = "inactive"
)

// ErrNegativeBranchStock: şube stoğu eksi bir değerle kaydedilmek istendiğinde döner
var ErrNegativeBranchStock = errors.New("şube stoğu eksiye düşemez")

// BranchProduct: Bir ürünün şube bazlı stok sayacı. (branch, product) ikilisi
// benzersizdir. Kayıt, ilgili şubeye ilk sevkiyat yapıldığında otomatik açılır.
type BranchProduct struct {
	ID        uint `gorm:"primaryKey"`
	BranchID  uint `gorm:"index;not null;uniqueIndex:idx_branch_product"`
	Branch    Branch
	ProductID uint `gorm:"index;not null;uniqueIndex:idx_branch_product"`
	Product   Product

	Quantity int                 `gorm:"not null;default:0"`
	Status   BranchProductStatus `gorm:"size:10;not null;default:inactive"`

	CreatedAt time.Time
	UpdatedAt time.Time // son güncelleme zamanı
}

// Kayıt anında kontrol: şube stoğu asla eksi yazılamaz. Bellekteki değer
// geçici olarak eksi olabilir ama veritabanına inmeden burada reddedilir.
func (bp *BranchProduct) BeforeSave(tx *gorm.DB) error {
	if bp.Quantity < 0 {
		return ErrNegativeBranchStock
	}
	return nil
}
