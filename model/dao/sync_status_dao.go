package dao

import (
	"context"
	"errors"
	"time"

	"storage-market-indexer/database"
	"storage-market-indexer/model"
)

// IndexerSyncStatusDAO indexer sync status data access object
type IndexerSyncStatusDAO struct {
	db database.Database
}

// NewIndexerSyncStatusDAO create sync status DAO instance; nil db falls back to the global database
func NewIndexerSyncStatusDAO(db database.Database) *IndexerSyncStatusDAO {
	if db == nil {
		db = database.DB
	}
	return &IndexerSyncStatusDAO{db: db}
}

// GetByChainName get sync status by chain name, nil when the chain was never synced
func (dao *IndexerSyncStatusDAO) GetByChainName(ctx context.Context, chainName string) (*model.IndexerSyncStatus, error) {
	var status model.IndexerSyncStatus
	if err := dao.db.Get(ctx, &status, chainName); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// UpdateCurrentSyncHeight record the last fully applied block, creating the row on first use
func (dao *IndexerSyncStatusDAO) UpdateCurrentSyncHeight(ctx context.Context, chainName string, height int64) error {
	tx, err := dao.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	var status model.IndexerSyncStatus
	if err := tx.Get(&status, chainName); err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return err
		}
		status = model.IndexerSyncStatus{ID: chainName, ChainName: chainName, CreatedAt: now}
	}
	status.CurrentSyncHeight = height
	status.UpdatedAt = now

	if err := tx.Put(&status); err != nil {
		return err
	}
	return tx.Commit()
}

// GetAll get every chain's sync status
func (dao *IndexerSyncStatusDAO) GetAll(ctx context.Context) ([]model.IndexerSyncStatus, error) {
	var all []model.IndexerSyncStatus
	cursor := ""
	for {
		page := make([]model.IndexerSyncStatus, 0)
		next, err := dao.db.List(ctx, &model.IndexerSyncStatus{}, &page, database.ListOptions{Cursor: cursor, Size: database.MaxPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if next == "" {
			return all, nil
		}
		cursor = next
	}
}
