package indexer_service

import (
	"context"
	"errors"
	"fmt"

	"storage-market-indexer/database"
	"storage-market-indexer/logger"
	"storage-market-indexer/model"
	"storage-market-indexer/model/dao"
)

// ErrSyncStatusNotFound chain has never completed a window
var ErrSyncStatusNotFound = errors.New("sync status not found")

// HeightSource reports the node's latest block height
type HeightSource interface {
	LatestBlockHeight(ctx context.Context) (int64, error)
}

// SyncStatusService sync status service
type SyncStatusService struct {
	syncStatusDAO *dao.IndexerSyncStatusDAO
	heights       HeightSource
	chainName     string
}

// SyncProgress persisted sync height next to the node head
type SyncProgress struct {
	ChainName         string `json:"chain_name"`
	CurrentSyncHeight int64  `json:"current_sync_height"`
	LatestBlockHeight int64  `json:"latest_block_height"`
	BlocksBehind      int64  `json:"blocks_behind"`
	UpdatedAt         int64  `json:"updated_at"`
}

// NewSyncStatusService create sync status service instance; nil db means database.DB
func NewSyncStatusService(db database.Database, chainName string) *SyncStatusService {
	return &SyncStatusService{
		syncStatusDAO: dao.NewIndexerSyncStatusDAO(db),
		chainName:     chainName,
	}
}

// SetHeightSource set the source for the latest block height
func (s *SyncStatusService) SetHeightSource(heights HeightSource) {
	s.heights = heights
}

// GetSyncStatus get sync status of the indexed chain
func (s *SyncStatusService) GetSyncStatus(ctx context.Context) (*model.IndexerSyncStatus, error) {
	return s.GetSyncStatusByChain(ctx, s.chainName)
}

// GetSyncStatusByChain get sync status by chain name
func (s *SyncStatusService) GetSyncStatusByChain(ctx context.Context, chainName string) (*model.IndexerSyncStatus, error) {
	status, err := s.syncStatusDAO.GetByChainName(ctx, chainName)
	if err != nil {
		return nil, fmt.Errorf("failed to get sync status: %w", err)
	}
	if status == nil {
		return nil, ErrSyncStatusNotFound
	}
	return status, nil
}

// GetAllSyncStatus get all chain sync status
func (s *SyncStatusService) GetAllSyncStatus(ctx context.Context) ([]model.IndexerSyncStatus, error) {
	statuses, err := s.syncStatusDAO.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sync status: %w", err)
	}
	return statuses, nil
}

// GetLatestBlockHeight get latest block height from node
func (s *SyncStatusService) GetLatestBlockHeight(ctx context.Context) (int64, error) {
	if s.heights == nil {
		return 0, errors.New("height source not available")
	}

	latestHeight, err := s.heights.LatestBlockHeight(ctx)
	if err != nil {
		logger.Warnf("Failed to get latest block height from node: %v", err)
		return 0, err
	}
	return latestHeight, nil
}

// GetProgress combine persisted sync height and node head; a missing head leaves LatestBlockHeight at 0
func (s *SyncStatusService) GetProgress(ctx context.Context) (*SyncProgress, error) {
	progress := &SyncProgress{ChainName: s.chainName}

	status, err := s.syncStatusDAO.GetByChainName(ctx, s.chainName)
	if err != nil {
		return nil, fmt.Errorf("failed to get sync status: %w", err)
	}
	if status != nil {
		progress.CurrentSyncHeight = status.CurrentSyncHeight
		progress.UpdatedAt = status.UpdatedAt
	}

	if s.heights != nil {
		if latest, err := s.GetLatestBlockHeight(ctx); err == nil {
			progress.LatestBlockHeight = latest
			if latest > progress.CurrentSyncHeight {
				progress.BlocksBehind = latest - progress.CurrentSyncHeight
			}
		}
	}
	return progress, nil
}
