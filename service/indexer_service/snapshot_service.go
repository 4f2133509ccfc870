package indexer_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"storage-market-indexer/database"
	"storage-market-indexer/logger"
	"storage-market-indexer/metrics"
	"storage-market-indexer/model"
	"storage-market-indexer/model/dao"
	"storage-market-indexer/storage"
)

const (
	snapshotPrefix    = "snapshots/"
	latestSnapshotKey = snapshotPrefix + "latest.json"
)

// ErrNoSnapshot no snapshot has been exported yet
var ErrNoSnapshot = errors.New("no snapshot exported yet")

// Snapshot point-in-time export of the aggregate rows
type Snapshot struct {
	GeneratedAt int64                     `json:"generated_at"`
	System      *model.SystemStats        `json:"system"`
	Market      *model.MarketStats        `json:"market"`
	SyncStatus  []model.IndexerSyncStatus `json:"sync_status"`
}

// SnapshotService periodically exports stats snapshots to object storage
type SnapshotService struct {
	query         *QueryService
	syncStatusDAO *dao.IndexerSyncStatusDAO
	storage       storage.Storage
	interval      time.Duration
	stopChan      chan struct{}
	wg            sync.WaitGroup
	now           func() time.Time
}

// NewSnapshotService create snapshot service; interval <= 0 disables the ticker but Export still works
func NewSnapshotService(db database.Database, store storage.Storage, interval time.Duration) *SnapshotService {
	return &SnapshotService{
		query:         NewQueryService(db),
		syncStatusDAO: dao.NewIndexerSyncStatusDAO(db),
		storage:       store,
		interval:      interval,
		stopChan:      make(chan struct{}),
		now:           time.Now,
	}
}

// Start start the export loop
func (s *SnapshotService) Start() {
	if s.interval <= 0 {
		logger.Infof("Snapshot exporter disabled")
		return
	}
	logger.Infof("Snapshot exporter started (interval: %s)", s.interval)
	s.wg.Add(1)
	go s.run()
}

// Stop stop the export loop and wait for an in-flight export
func (s *SnapshotService) Stop() {
	if s.interval <= 0 {
		return
	}
	logger.Infof("Stopping snapshot exporter...")
	close(s.stopChan)
	s.wg.Wait()
}

func (s *SnapshotService) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			logger.Infof("Snapshot exporter stopped")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.interval)
			if _, key, err := s.Export(ctx); err != nil {
				logger.Errorf("Failed to export snapshot: %v", err)
			} else {
				logger.Debugf("Exported snapshot %s", key)
			}
			cancel()
		}
	}
}

// Export write a snapshot under snapshots/stats-<unix>.json and refresh snapshots/latest.json
func (s *SnapshotService) Export(ctx context.Context) (*Snapshot, string, error) {
	snapshot, err := s.build(ctx)
	if err != nil {
		metrics.Indexer().RecordSnapshot(false)
		return nil, "", err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		metrics.Indexer().RecordSnapshot(false)
		return nil, "", fmt.Errorf("marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("%sstats-%d.json", snapshotPrefix, snapshot.GeneratedAt)
	for _, k := range []string{key, latestSnapshotKey} {
		if err := s.storage.Save(ctx, k, data); err != nil {
			metrics.Indexer().RecordSnapshot(false)
			return nil, "", fmt.Errorf("save snapshot %s: %w", k, err)
		}
	}

	metrics.Indexer().RecordSnapshot(true)
	return snapshot, key, nil
}

func (s *SnapshotService) build(ctx context.Context) (*Snapshot, error) {
	system, err := s.query.GetSystemStats(ctx)
	if err != nil {
		return nil, err
	}
	market, err := s.query.GetMarketStats(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.syncStatusDAO.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sync status: %w", err)
	}
	return &Snapshot{
		GeneratedAt: s.now().Unix(),
		System:      system,
		Market:      market,
		SyncStatus:  statuses,
	}, nil
}

// Latest most recently exported snapshot
func (s *SnapshotService) Latest(ctx context.Context) (*Snapshot, error) {
	data, err := s.storage.Get(ctx, latestSnapshotKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snapshot, nil
}
