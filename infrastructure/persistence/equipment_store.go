package persistence

import (
	"context"
	"fmt"

	"github.com/plantfeed/plantfeed/domain/equipment"
	"github.com/plantfeed/plantfeed/domain/store"
	"github.com/plantfeed/plantfeed/internal/database"
)

// EquipmentStore is the GORM-backed equipment.Store.
type EquipmentStore struct {
	database.Repository[equipment.Equipment, EquipmentModel]
}

// NewEquipmentStore creates an equipment store over the given database.
func NewEquipmentStore(db database.Database) *EquipmentStore {
	return &EquipmentStore{
		Repository: database.NewRepository[equipment.Equipment, EquipmentModel](db, equipmentMapper{}, "equipment"),
	}
}

// Save inserts the equipment when it has no ID yet, otherwise overwrites the
// row in full, including nulling fields absent from the new record.
func (s *EquipmentStore) Save(ctx context.Context, eq equipment.Equipment) (equipment.Equipment, error) {
	model := s.Mapper().ToModel(eq)

	var err error
	if model.ID == 0 {
		err = s.DB(ctx).Create(&model).Error
	} else {
		err = s.DB(ctx).Save(&model).Error
	}
	if err != nil {
		return equipment.Equipment{}, fmt.Errorf("save equipment %s: %w", eq.EquipmentID(), err)
	}
	return s.Mapper().ToDomain(model), nil
}

// DistinctTypes returns the distinct equipment types among the matching rows,
// sorted alphabetically.
func (s *EquipmentStore) DistinctTypes(ctx context.Context, opts ...store.Option) ([]string, error) {
	var types []string
	db := database.ApplyConditions(s.DB(ctx).Model(&EquipmentModel{}), opts...)
	err := db.Distinct("equipment_type").Order("equipment_type ASC").Pluck("equipment_type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("distinct equipment types: %w", err)
	}
	return types, nil
}

var _ equipment.Store = (*EquipmentStore)(nil)
