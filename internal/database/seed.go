package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"festive-births-svc/internal/config"
	"festive-births-svc/internal/models"
	"festive-births-svc/pkg/logger"
)

// SeedSuperuser creates the bootstrap superuser when all SUPERUSER_* variables are set.
// An existing account with the same username is left untouched.
func SeedSuperuser(db *gorm.DB, cfg *config.AuthConfig, log *logger.Logger) error {
	if !cfg.SuperuserConfigured() {
		log.Info("Superuser environment variables not set, skipping superuser creation")
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.SuperuserUsername).First(&existing).Error
	if err == nil {
		log.WithField("username", cfg.SuperuserUsername).Info("Superuser already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up superuser: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperuserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash superuser password: %w", err)
	}

	user := models.User{
		DocumentID:  uuid.NewString(),
		Username:    cfg.SuperuserUsername,
		Email:       cfg.SuperuserEmail,
		Password:    string(hash),
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	log.WithField("username", user.Username).Info("Superuser created successfully")
	return nil
}
