package stock

import (
	"sync"
	"testing"

	"github.com/shibilicv/stock-management-backend/internal/database"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// sqlite tek yazar ister; eşzamanlı testlerde kilit hatası olmaması için
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, qty int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Quantity: qty, OpeningStock: uint(qty)}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createBranch(t *testing.T, db *gorm.DB, name string) models.Branch {
	t.Helper()
	b := models.Branch{Name: name}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func createSupplier(t *testing.T, db *gorm.DB, name string) models.Supplier {
	t.Helper()
	s := models.Supplier{Name: name}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func productQty(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p.Quantity
}

// Tam akış: giriş, iki sevkiyat, hasar. Her adımda merkez ve şube
// sayaçlarının beklenen değerde olduğu kontrol edilir.
func TestStockMovementFlow(t *testing.T) {
	db := newTestDB(t)

	product := createProduct(t, db, "Widget", 0)
	branch := createBranch(t, db, "Kadıköy")
	supplier := createSupplier(t, db, "Anadolu Gıda")

	// Giriş: 50 adet
	in := models.ProductInflow{ProductID: product.ID, SupplierID: supplier.ID, QuantityReceived: 50}
	require.NoError(t, RecordInflow(db, &in))
	assert.Equal(t, 50, productQty(t, db, product.ID))
	assert.False(t, in.DateReceived.IsZero())

	// İlk sevkiyat: 20 adet, şube kaydı otomatik açılmalı
	out := models.ProductOutflow{ProductID: product.ID, BranchID: branch.ID, QuantitySent: 20}
	require.NoError(t, RecordOutflow(db, &out))
	assert.Equal(t, 30, productQty(t, db, product.ID))

	var bp models.BranchProduct
	require.NoError(t, db.Where("branch_id = ? AND product_id = ?", branch.ID, product.ID).First(&bp).Error)
	assert.Equal(t, 20, bp.Quantity)
	assert.Equal(t, models.BranchProductInactive, bp.Status)

	// İkinci sevkiyat: mevcut şube kaydı artırılmalı, yenisi açılmamalı
	out2 := models.ProductOutflow{ProductID: product.ID, BranchID: branch.ID, QuantitySent: 5}
	require.NoError(t, RecordOutflow(db, &out2))
	assert.Equal(t, 25, productQty(t, db, product.ID))

	var count int64
	db.Model(&models.BranchProduct{}).Where("branch_id = ? AND product_id = ?", branch.ID, product.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.First(&bp, "id = ?", bp.ID).Error)
	assert.Equal(t, 25, bp.Quantity)

	// Hasar: 5 adet merkezden düşer, şubeyi etkilemez
	dmg := models.DamagedProduct{ProductID: product.ID, Quantity: 5, Reason: "kırık koli"}
	require.NoError(t, RecordDamage(db, &dmg))
	assert.Equal(t, 20, productQty(t, db, product.ID))

	require.NoError(t, db.First(&bp, "id = ?", bp.ID).Error)
	assert.Equal(t, 25, bp.Quantity)
}

// Merkez stok eksiye inebilmeli: yeterlilik kontrolü bilinçli olarak yok.
func TestCentralStockCanGoNegative(t *testing.T) {
	db := newTestDB(t)

	product := createProduct(t, db, "Widget", 3)
	branch := createBranch(t, db, "Beşiktaş")

	out := models.ProductOutflow{ProductID: product.ID, BranchID: branch.ID, QuantitySent: 10}
	require.NoError(t, RecordOutflow(db, &out))
	assert.Equal(t, -7, productQty(t, db, product.ID))

	dmg := models.DamagedProduct{ProductID: product.ID, Quantity: 4, Reason: "son kullanma tarihi geçti"}
	require.NoError(t, RecordDamage(db, &dmg))
	assert.Equal(t, -11, productQty(t, db, product.ID))
}

// Olmayan ürüne hareket kaydı açılamaz; transaction geri alınır ve
// hareket satırı da kalmaz.
func TestMovementUnknownProductRollsBack(t *testing.T) {
	db := newTestDB(t)

	supplier := createSupplier(t, db, "Anadolu Gıda")

	in := models.ProductInflow{ProductID: 9999, SupplierID: supplier.ID, QuantityReceived: 10}
	err := RecordInflow(db, &in)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	db.Model(&models.ProductInflow{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

// Aynı ürüne eşzamanlı girişlerde güncelleme kaybı olmamalı. Sayaç
// güncellemeleri veritabanı tarafında göreceli yapıldığı için toplam
// her zaman tutmalı.
func TestConcurrentInflows(t *testing.T) {
	db := newTestDB(t)

	product := createProduct(t, db, "Widget", 0)
	supplier := createSupplier(t, db, "Anadolu Gıda")

	const workers = 5
	const perWorker = 4

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				in := models.ProductInflow{ProductID: product.ID, SupplierID: supplier.ID, QuantityReceived: 3}
				errs <- RecordInflow(db, &in)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, workers*perWorker*3, productQty(t, db, product.ID))
}

// Giriş ve hasar kayıtlarının sırası sonucu değiştirmemeli.
func TestMovementOrderCommutes(t *testing.T) {
	db := newTestDB(t)

	supplier := createSupplier(t, db, "Anadolu Gıda")

	p1 := createProduct(t, db, "Widget A", 0)
	require.NoError(t, RecordInflow(db, &models.ProductInflow{ProductID: p1.ID, SupplierID: supplier.ID, QuantityReceived: 8}))
	require.NoError(t, RecordDamage(db, &models.DamagedProduct{ProductID: p1.ID, Quantity: 3, Reason: "nem"}))

	p2 := createProduct(t, db, "Widget B", 0)
	require.NoError(t, RecordDamage(db, &models.DamagedProduct{ProductID: p2.ID, Quantity: 3, Reason: "nem"}))
	require.NoError(t, RecordInflow(db, &models.ProductInflow{ProductID: p2.ID, SupplierID: supplier.ID, QuantityReceived: 8}))

	assert.Equal(t, productQty(t, db, p1.ID), productQty(t, db, p2.ID))
	assert.Equal(t, 5, productQty(t, db, p1.ID))
}

// Farklı şubelere sevkiyat ayrı sayaçlar açar, birbirini etkilemez.
func TestOutflowPerBranchCounters(t *testing.T) {
	db := newTestDB(t)

	product := createProduct(t, db, "Widget", 100)
	b1 := createBranch(t, db, "Kadıköy")
	b2 := createBranch(t, db, "Beşiktaş")

	require.NoError(t, RecordOutflow(db, &models.ProductOutflow{ProductID: product.ID, BranchID: b1.ID, QuantitySent: 30}))
	require.NoError(t, RecordOutflow(db, &models.ProductOutflow{ProductID: product.ID, BranchID: b2.ID, QuantitySent: 10}))

	var bp1, bp2 models.BranchProduct
	require.NoError(t, db.Where("branch_id = ? AND product_id = ?", b1.ID, product.ID).First(&bp1).Error)
	require.NoError(t, db.Where("branch_id = ? AND product_id = ?", b2.ID, product.ID).First(&bp2).Error)

	assert.Equal(t, 30, bp1.Quantity)
	assert.Equal(t, 10, bp2.Quantity)
	assert.Equal(t, 60, productQty(t, db, product.ID))
}
