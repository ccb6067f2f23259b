package persistence

import (
	"context"
	"fmt"

	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/internal/database"
)

// BatchStore is the GORM-backed batch.Store.
type BatchStore struct {
	database.Repository[batch.Batch, BatchModel]
}

// NewBatchStore creates a batch store over the given database.
func NewBatchStore(db database.Database) *BatchStore {
	return &BatchStore{
		Repository: database.NewRepository[batch.Batch, BatchModel](db, batchMapper{}, "batch"),
	}
}

// Save inserts the batch when it has no ID yet, otherwise updates it in
// place. The persisted copy, with ID and upload time filled in, is returned.
func (s *BatchStore) Save(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	model := s.Mapper().ToModel(b)

	var result error
	if model.ID == 0 {
		result = s.DB(ctx).Create(&model).Error
	} else {
		result = s.DB(ctx).Save(&model).Error
	}
	if result != nil {
		return batch.Batch{}, fmt.Errorf("save batch: %w", result)
	}
	return s.Mapper().ToDomain(model), nil
}

var _ batch.Store = (*BatchStore)(nil)

// SummaryStore is the GORM-backed batch.SummaryStore.
type SummaryStore struct {
	database.Repository[batch.Summary, SummaryModel]
}

// NewSummaryStore creates a summary store over the given database.
func NewSummaryStore(db database.Database) *SummaryStore {
	return &SummaryStore{
		Repository: database.NewRepository[batch.Summary, SummaryModel](db, summaryMapper{}, "summary"),
	}
}

// Save upserts the summary on its batch ID, so recomputing a batch's summary
// replaces the previous one.
func (s *SummaryStore) Save(ctx context.Context, sum batch.Summary) (batch.Summary, error) {
	model := s.Mapper().ToModel(sum)

	if model.ID == 0 {
		var existing SummaryModel
		err := s.DB(ctx).Where("batch_id = ?", model.BatchID).First(&existing).Error
		if err == nil {
			model.ID = existing.ID
			model.CreatedAt = existing.CreatedAt
		}
	}

	if err := s.DB(ctx).Save(&model).Error; err != nil {
		return batch.Summary{}, fmt.Errorf("save summary: %w", err)
	}
	return s.Mapper().ToDomain(model), nil
}

var _ batch.SummaryStore = (*SummaryStore)(nil)
