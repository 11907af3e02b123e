package db

import (
	"fmt"

	"gorm.io/gorm"

	"vscreens/internal/model"
)

// Migrate creates or updates the schema. With reset set, existing tables are
// dropped first (children before parents).
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		for _, table := range []interface{}{&model.Session{}, &model.Screen{}, &model.User{}} {
			if err := db.Migrator().DropTable(table); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(&model.User{}, &model.Screen{}, &model.Session{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
