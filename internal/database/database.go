package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"festive-births-svc/internal/config"
	"festive-births-svc/internal/models"
)

// Database wraps the gorm connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a PostgreSQL connection
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Database{DB: db}, nil
}

// AutoMigrate creates or updates the schema and seeds the fixed roles
func (d *Database) AutoMigrate() error {
	if err := d.DB.SetupJoinTable(&models.User{}, "Roles", &models.UserRoleLink{}); err != nil {
		return fmt.Errorf("failed to set up user roles join table: %w", err)
	}

	if err := d.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.UserRoleLink{},
		&models.Profile{},
		&models.Delivery{},
		&models.Baby{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return SeedRoles(d.DB)
}

// SeedRoles creates any missing fixed role
func SeedRoles(db *gorm.DB) error {
	for _, role := range models.SeedRoles {
		r := role
		if err := db.Where(models.Role{Name: r.Name}).Attrs(models.Role{Description: r.Description}).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
