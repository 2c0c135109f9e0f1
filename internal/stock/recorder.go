package stock

import (
	"errors"
	"fmt"
	"time"

	"github.com/shibilicv/stock-management-backend/internal/models"

	"gorm.io/gorm"
)

// Stok hareketi kayıtları (giriş, sevkiyat, hasar) defter mantığıyla çalışır:
// hareket satırı ve etkilediği stok sayaçları tek transaction içinde yazılır,
// ikisi birden ya kaydedilir ya da hiç kaydedilmez. Sayaç güncellemeleri her
// zaman "quantity + ?" / "quantity - ?" şeklinde veritabanı tarafında yapılır;
// uygulama belleğinde okunan değerle üzerine yazmak eşzamanlı kayıtlarda
// güncelleme kaybettirir.

// RecordInflow: tedarikçiden merkez depoya mal girişi. Giriş kaydını yazar ve
// merkez stoğu alınan miktar kadar artırır. Giriş tarihi sunucuda atanır.
func RecordInflow(db *gorm.DB, in *models.ProductInflow) error {
	in.DateReceived = time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(in).Error; err != nil {
			return fmt.Errorf("giriş kaydı oluşturulamadı: %w", err)
		}

		res := tx.Model(&models.Product{}).
			Where("id = ?", in.ProductID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", in.QuantityReceived))
		if res.Error != nil {
			return fmt.Errorf("merkez stok güncellenemedi: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// RecordOutflow: merkezden şubeye sevkiyat. Tek transaction içinde üç adım:
// sevkiyat kaydı yazılır, şubenin stok sayacı artırılır (kayıt yoksa sevkiyat
// miktarıyla açılır, durumu inactive), merkez stok düşülür. Merkez stok için
// yeterlilik kontrolü yok; eksiye inebilir.
func RecordOutflow(db *gorm.DB, out *models.ProductOutflow) error {
	out.DateSent = time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(out).Error; err != nil {
			return fmt.Errorf("sevkiyat kaydı oluşturulamadı: %w", err)
		}

		// Şube stok sayacı: yoksa aç, varsa artır
		var bp models.BranchProduct
		err := tx.Where("branch_id = ? AND product_id = ?", out.BranchID, out.ProductID).
			First(&bp).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			bp = models.BranchProduct{
				BranchID:  out.BranchID,
				ProductID: out.ProductID,
				Quantity:  int(out.QuantitySent),
				Status:    models.BranchProductInactive,
			}
			// (branch, product) unique olduğu için eşzamanlı ilk sevkiyatta
			// ikinci create patlar ve transaction geri alınır
			if err := tx.Create(&bp).Error; err != nil {
				return fmt.Errorf("şube stok kaydı açılamadı: %w", err)
			}
		case err != nil:
			return fmt.Errorf("şube stok kaydı okunamadı: %w", err)
		default:
			res := tx.Model(&models.BranchProduct{}).
				Where("id = ?", bp.ID).
				UpdateColumns(map[string]interface{}{
					"quantity":   gorm.Expr("quantity + ?", out.QuantitySent),
					"updated_at": time.Now(),
				})
			if res.Error != nil {
				return fmt.Errorf("şube stok güncellenemedi: %w", res.Error)
			}
		}

		// Merkez stoktan düş
		res := tx.Model(&models.Product{}).
			Where("id = ?", out.ProductID).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", out.QuantitySent))
		if res.Error != nil {
			return fmt.Errorf("merkez stok güncellenemedi: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// RecordDamage: hasar/zayiat kaydı. Hasar satırını yazar ve merkez stoğu
// düşürür. Merkez stok eksiye inebilir; alt sınır kontrolü bilinçli olarak yok.
func RecordDamage(db *gorm.DB, dmg *models.DamagedProduct) error {
	dmg.DateReported = time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dmg).Error; err != nil {
			return fmt.Errorf("hasar kaydı oluşturulamadı: %w", err)
		}

		res := tx.Model(&models.Product{}).
			Where("id = ?", dmg.ProductID).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", dmg.Quantity))
		if res.Error != nil {
			return fmt.Errorf("merkez stok güncellenemedi: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
