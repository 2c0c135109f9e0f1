package database

import (
	"log"

	"github.com/shibilicv/stock-management-backend/internal/config"
	"github.com/shibilicv/stock-management-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: tüm tabloları oluşturur/günceller. Testler de aynı listeyi kullanır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Branch{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.Supplier{},
		&models.BranchProduct{},
		&models.ProductInflow{},
		&models.ProductOutflow{},
		&models.DamagedProduct{},
		&models.ProductRequest{},
		&models.AuditLog{},
	)
}
