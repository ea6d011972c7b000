package postgres

import (
	"fmt"

	"accessmap/internal/infrastructure/database/postgres/models"
)

// AutoMigrate creates or updates the schema for all models.
func (d *DB) AutoMigrate() error {
	err := d.DB.AutoMigrate(
		&models.UserModel{},
		&models.FavoriteModel{},
		&models.LocationModel{},
		&models.ReviewModel{},
		&models.ReviewLikeModel{},
		&models.ReplyModel{},
		&models.ReplyLikeModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
