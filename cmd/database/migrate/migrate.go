package migration

import (
	"Recipe-API/entities"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrating user table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		return fmt.Errorf("migrating recipe table: %w", err)
	}
	return nil
}
