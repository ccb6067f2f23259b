package persistence

import (
	"fmt"

	"github.com/plantfeed/plantfeed/internal/database"
)

// AutoMigrate creates or updates the schema for all stores.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(
		&BatchModel{},
		&EquipmentModel{},
		&SummaryModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
