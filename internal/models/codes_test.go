package models

import (
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var codePattern = regexp.MustCompile(`^[A-ZÇĞİÖŞÜ]{1,3}-[0-9A-F]{6}$`)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Branch{}, &Category{}, &Brand{}, &Product{}, &BranchProduct{}, &User{}))
	return db
}

func TestMintCodeFormat(t *testing.T) {
	db := newTestDB(t)

	code, err := MintCode(db, "products", "sku", "Widget")
	require.NoError(t, err)

	assert.Regexp(t, codePattern, code)
	assert.Equal(t, "WID", code[:3])
}

func TestCodePrefix(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Widget", "WID"},
		{"su", "SU"},
		{"a", "A"},
		{"çay bardağı", "ÇAY"}, // Türkçe karakterler rune bazlı kesilmeli
		{"  Makarna  ", "MAK"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, codePrefix(c.name), "isim: %q", c.name)
	}
}

func TestMintCodeUniqueAcrossMints(t *testing.T) {
	db := newTestDB(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := MintCode(db, "products", "sku", "Widget")
		require.NoError(t, err)
		// Üretilen kodu tabloya yaz ki sonraki mint'ler çakışmayı görebilsin
		require.NoError(t, db.Create(&Product{Name: "Widget", SKU: code}).Error)

		assert.False(t, seen[code], "kod tekrar üretildi: %s", code)
		seen[code] = true
	}
}

func TestProductSKUMintedOnCreate(t *testing.T) {
	db := newTestDB(t)

	p := Product{Name: "Widget"}
	require.NoError(t, db.Create(&p).Error)
	assert.Regexp(t, codePattern, p.SKU)

	// Tekrar kaydedilince SKU değişmemeli
	sku := p.SKU
	p.Name = "Widget Pro"
	require.NoError(t, db.Save(&p).Error)

	var fresh Product
	require.NoError(t, db.First(&fresh, "id = ?", p.ID).Error)
	assert.Equal(t, sku, fresh.SKU)
}

func TestProductSKUExplicitKept(t *testing.T) {
	db := newTestDB(t)

	p := Product{Name: "Widget", SKU: "CUSTOM-01"}
	require.NoError(t, db.Create(&p).Error)
	assert.Equal(t, "CUSTOM-01", p.SKU)
}

func TestBranchCodeMintedOnCreate(t *testing.T) {
	db := newTestDB(t)

	b := Branch{Name: "Kadıköy"}
	require.NoError(t, db.Create(&b).Error)
	assert.Regexp(t, codePattern, b.BranchCode)
	assert.Equal(t, "KAD", b.BranchCode[:3])
}
