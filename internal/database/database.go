package database

import (
	"github.com/assetdeck/backend/internal/config"
	"github.com/assetdeck/backend/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the panel database. Without a DATABASE_URL the panel runs
// entirely in memory, which is the normal mode for this demo: state lives
// for the lifetime of the process and is re-seeded on every startup.
func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if cfg.URL != "" {
		db, err = gorm.Open(postgres.Open(cfg.URL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		if err == nil {
			// In-memory sqlite exists per connection; a second connection
			// would see an empty database.
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return nil, dbErr
			}
			sqlDB.SetMaxOpenConns(1)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if cfg.SeedDemo {
		if err := Seed(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Folder{},
		&models.File{},
		&models.AccessRule{},
		&models.UserCollection{},
		&models.UserRoleOption{},
	)
}
