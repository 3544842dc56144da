package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/config"
	"github.com/latia/admin-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Access control
		&entity.User{},
		&entity.Admin{},

		// Catalog
		&entity.Product{},

		// Billing
		&entity.Client{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Sale{},

		// Expenses
		&entity.Expense{},
		&entity.ExpenseCategory{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// defaultExpenseCategories is the starter list offered in the expense form.
// Operators can add and remove entries later; these only seed an empty table.
var defaultExpenseCategories = []string{
	"Cocina / Insumos",
	"Servicios (Luz, Agua, Gas)",
	"Local / Renta",
	"Marketing / Publicidad",
	"Transporte",
	"Otros",
}

// SeedDefaultData seeds the database with default data (expense categories
// and the super admin account)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var categoryCount int64
	if err := db.Model(&entity.ExpenseCategory{}).Count(&categoryCount).Error; err != nil {
		return fmt.Errorf("failed to count expense categories: %w", err)
	}
	if categoryCount == 0 {
		for _, name := range defaultExpenseCategories {
			if err := db.Create(&entity.ExpenseCategory{Name: name}).Error; err != nil {
				log.Printf("Warning: failed to create expense category %s: %v", name, err)
			}
		}
	}

	// Create the super admin account if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Super Admin"
				}
				adminUser := entity.User{
					ID:       uuid.New(),
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create super admin user: %v", err)
				} else {
					log.Printf("Super admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Super admin user already exists: %s", adminEmail)
		}

		// The super admin always appears in the allow-list as well, so the
		// admin management screen shows a complete picture
		var adminEntry entity.Admin
		if err := db.Where(entity.Admin{Email: adminEmail}).
			Attrs(entity.Admin{Name: adminName}).
			FirstOrCreate(&adminEntry).Error; err != nil {
			log.Printf("Warning: failed to register super admin in allow-list: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
