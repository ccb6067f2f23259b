package service

import (
	"context"

	"github.com/plantfeed/plantfeed/domain/store"
	"github.com/plantfeed/plantfeed/infrastructure/artifact"
	"github.com/plantfeed/plantfeed/internal/log"
)

// ResetCounts reports what a reset removed.
type ResetCounts struct {
	Batches   int64
	Equipment int64
	Summaries int64
}

// Admin holds the destructive maintenance operations. Reset only works when
// explicitly enabled in config; it is meant for development databases.
type Admin struct {
	stores    Stores
	artifacts *artifact.Store
	enabled   bool
	logger    *log.Logger
}

// NewAdmin creates the admin service.
func NewAdmin(stores Stores, artifacts *artifact.Store, enabled bool, logger *log.Logger) *Admin {
	return &Admin{stores: stores, artifacts: artifacts, enabled: enabled, logger: logger}
}

// Reset deletes all batches, equipment, summaries and artifacts. Returns
// ErrResetDisabled unless ENABLE_RESET is set.
func (s *Admin) Reset(ctx context.Context) (ResetCounts, error) {
	if !s.enabled {
		return ResetCounts{}, ErrResetDisabled
	}

	var counts ResetCounts
	var err error
	if counts.Batches, err = s.stores.Batches.Count(ctx); err != nil {
		return ResetCounts{}, err
	}
	if counts.Equipment, err = s.stores.Equipment.Count(ctx); err != nil {
		return ResetCounts{}, err
	}
	if counts.Summaries, err = s.stores.Summaries.Count(ctx); err != nil {
		return ResetCounts{}, err
	}

	batches, err := s.stores.Batches.Find(ctx)
	if err != nil {
		return ResetCounts{}, err
	}
	for _, b := range batches {
		if err := s.artifacts.Delete(b.ArtifactKey()); err != nil {
			s.logger.WarnContext(ctx, "artifact delete failed during reset",
				"reset_batch", b.ID(), "key", b.ArtifactKey(), "error", err)
		}
	}

	// GORM refuses unconditioned deletes; the tautology makes the full wipe
	// explicit.
	wipe := store.WithWhere("1 = 1")
	if err := s.stores.Summaries.DeleteBy(ctx, wipe); err != nil {
		return ResetCounts{}, err
	}
	if err := s.stores.Equipment.DeleteBy(ctx, wipe); err != nil {
		return ResetCounts{}, err
	}
	if err := s.stores.Batches.DeleteBy(ctx, wipe); err != nil {
		return ResetCounts{}, err
	}

	s.logger.InfoContext(ctx, "all data cleared",
		"batches", counts.Batches, "equipment", counts.Equipment)
	return counts, nil
}
