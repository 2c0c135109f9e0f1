package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchProductNegativeQuantityRejected(t *testing.T) {
	db := newTestDB(t)

	branch := Branch{Name: "Kadıköy"}
	require.NoError(t, db.Create(&branch).Error)
	product := Product{Name: "Widget"}
	require.NoError(t, db.Create(&product).Error)

	bp := BranchProduct{BranchID: branch.ID, ProductID: product.ID, Quantity: 10, Status: BranchProductActive}
	require.NoError(t, db.Create(&bp).Error)

	// Eksi değer kaydedilmek istenince hata dönmeli
	bp.Quantity = -1
	err := db.Save(&bp).Error
	assert.ErrorIs(t, err, ErrNegativeBranchStock)

	// Veritabanındaki değer değişmemiş olmalı
	var fresh BranchProduct
	require.NoError(t, db.First(&fresh, "id = ?", bp.ID).Error)
	assert.Equal(t, 10, fresh.Quantity)
}

func TestBranchProductUniquePerBranch(t *testing.T) {
	db := newTestDB(t)

	branch := Branch{Name: "Kadıköy"}
	require.NoError(t, db.Create(&branch).Error)
	product := Product{Name: "Widget"}
	require.NoError(t, db.Create(&product).Error)

	require.NoError(t, db.Create(&BranchProduct{BranchID: branch.ID, ProductID: product.ID}).Error)

	// Aynı (şube, ürün) ikilisi ikinci kez açılamaz
	err := db.Create(&BranchProduct{BranchID: branch.ID, ProductID: product.ID}).Error
	assert.Error(t, err)
}

func TestRequestStatusValid(t *testing.T) {
	assert.True(t, RequestPending.Valid())
	assert.True(t, RequestAcknowledged.Valid())
	assert.True(t, RequestFulfilled.Valid())
	assert.False(t, RequestStatus("shipped").Valid())
	assert.False(t, RequestStatus("").Valid())
}
