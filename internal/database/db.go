package database

import (
	"log"

	"portal-backend/internal/config"
	"portal-backend/internal/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database connected. Migrations applied.")
}

// Migrate applies the schema to the given connection. Separated from Init so
// tests can run the same migrations against their own database.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202608300001_portal_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Inquiry{},
					&models.InquiryItem{},
					&models.TechnicalDoc{},
					&models.InquiryDraft{},
					&models.InquirySequence{},
					&models.MasterItem{},
					&models.CustomerAccount{},
					&models.Engineer{},
					&models.AuditLog{},
				)
			},
		},
		{
			// Reference numbers used to be derived from the inquiry count,
			// which collides after deletions. Seed the monotonic counter
			// from the current count so the series continues unbroken.
			ID: "202608300002_seed_inquiry_sequence",
			Migrate: func(tx *gorm.DB) error {
				var count int64
				if err := tx.Model(&models.Inquiry{}).Count(&count).Error; err != nil {
					return err
				}
				seq := models.InquirySequence{ID: 1, NextSeq: int(count) + 1}
				return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error
			},
		},
	})

	return m.Migrate()
}
