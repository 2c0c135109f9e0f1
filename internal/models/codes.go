package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kod üretiminde çakışma olursa kaç kez yeniden denenecek
const mintAttempts = 5

// MintCode: "WID-3F2A1B" formatında kimlik kodu üretir (SKU ve şube kodu).
// İsmin ilk 3 harfi (büyük) + tire + uuid'den 6 hex karakter (büyük).
// Kod unique kolona yazılacağı için üretilen kod tabloda var mı kontrol edilir,
// çakışma varsa yeniden üretilir.
func MintCode(tx *gorm.DB, table, column, name string) (string, error) {
	prefix := codePrefix(name)

	for i := 0; i < mintAttempts; i++ {
		code := prefix + "-" + randomHexSuffix()

		var count int64
		if err := tx.Table(table).Where(fmt.Sprintf("%s = ?", column), code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("kod kontrolü yapılamadı: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}

	return "", fmt.Errorf("benzersiz kod üretilemedi (%s.%s)", table, column)
}

// İsmin ilk 3 karakteri, büyük harfle. Türkçe karakterler için rune bazlı.
func codePrefix(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

// uuid'nin ilk 6 hex karakteri, büyük harfle
func randomHexSuffix() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:6])
}
