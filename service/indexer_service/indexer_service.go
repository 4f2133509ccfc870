package indexer_service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"storage-market-indexer/conf"
	"storage-market-indexer/database"
	"storage-market-indexer/indexer"
	"storage-market-indexer/logger"
	"storage-market-indexer/metrics"
	"storage-market-indexer/model/dao"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// RescanTaskStatus represents the status of a rescan task
type RescanTaskStatus string

const (
	RescanStatusIdle      RescanTaskStatus = "idle"
	RescanStatusRunning   RescanTaskStatus = "running"
	RescanStatusCompleted RescanTaskStatus = "completed"
	RescanStatusCancelled RescanTaskStatus = "cancelled"
	RescanStatusFailed    RescanTaskStatus = "failed"
)

// RescanTask represents a rescan task
type RescanTask struct {
	TaskID          string             `json:"task_id"`
	Chain           string             `json:"chain"`
	Status          RescanTaskStatus   `json:"status"`
	StartHeight     int64              `json:"start_height"`
	EndHeight       int64              `json:"end_height"`
	CurrentHeight   int64              `json:"current_height"`
	ProcessedBlocks int64              `json:"processed_blocks"`
	TotalBlocks     int64              `json:"total_blocks"`
	DecodedEvents   int64              `json:"decoded_events"` // Events handed to the processor, duplicates included
	StartTime       time.Time          `json:"start_time"`
	ErrorMessage    string             `json:"error_message,omitempty"`
	CancelFunc      context.CancelFunc `json:"-"`
	mu              sync.RWMutex
}

// IndexerService indexer service
type IndexerService struct {
	client        indexer.ChainClient
	decoder       *indexer.LogDecoder
	scanner       *indexer.LogScanner
	opts          indexer.ScannerOptions
	processor     *EventProcessor
	syncStatusDAO *dao.IndexerSyncStatusDAO

	// serialises live and rescan event application
	applyMu sync.Mutex

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	started atomic.Bool

	// Rescan task management
	currentRescanTask *RescanTask
	rescanMu          sync.Mutex
}

// ContractSpecs converts configured contracts into decoder specs, loading ABI overrides from disk
func ContractSpecs(contracts []conf.ContractConfig) ([]*indexer.ContractSpec, error) {
	specs := make([]*indexer.ContractSpec, 0, len(contracts))
	for _, c := range contracts {
		kind := indexer.ContractKind(strings.ToLower(c.Kind))
		if !kind.Valid() {
			return nil, fmt.Errorf("contract %s: unknown kind %q", c.Name, c.Kind)
		}
		if !common.IsHexAddress(c.Address) {
			return nil, fmt.Errorf("contract %s: invalid address %q", c.Name, c.Address)
		}
		if c.StartBlock < 0 {
			return nil, fmt.Errorf("contract %s: negative start block", c.Name)
		}
		spec := &indexer.ContractSpec{
			Name:       c.Name,
			Kind:       kind,
			Address:    common.HexToAddress(c.Address),
			StartBlock: uint64(c.StartBlock),
		}
		if c.AbiFile != "" {
			parsed, err := indexer.LoadABIFile(c.AbiFile)
			if err != nil {
				return nil, fmt.Errorf("contract %s: %w", c.Name, err)
			}
			spec.ABI = parsed
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// NewIndexerServiceFromConfig create indexer service from conf.Cfg-style settings
func NewIndexerServiceFromConfig(db database.Database, client indexer.ChainClient, cfg *conf.Config) (*IndexerService, error) {
	specs, err := ContractSpecs(cfg.Indexer.Contracts)
	if err != nil {
		return nil, err
	}
	var startHeight uint64
	if cfg.Indexer.StartHeight > 0 {
		startHeight = uint64(cfg.Indexer.StartHeight)
	}
	return NewIndexerService(db, client, specs, indexer.ScannerOptions{
		ChainName:     cfg.Chain.Name,
		StartHeight:   startHeight,
		BatchSize:     uint64(cfg.Indexer.BatchSize),
		Confirmations: cfg.Chain.Confirmations,
		Interval:      time.Duration(cfg.Indexer.ScanInterval) * time.Second,
		ShowProgress:  cfg.Indexer.EnableProgress,
	})
}

// NewIndexerService create indexer service instance.
// opts.StartHeight is the configured start; the persisted sync height wins when it is further ahead.
func NewIndexerService(db database.Database, client indexer.ChainClient, specs []*indexer.ContractSpec, opts indexer.ScannerOptions) (*IndexerService, error) {
	if db == nil {
		db = database.DB
	}
	decoder, err := indexer.NewLogDecoder(specs)
	if err != nil {
		return nil, err
	}
	if opts.ChainName == "" {
		opts.ChainName = "evm"
	}

	syncStatusDAO := dao.NewIndexerSyncStatusDAO(db)
	startHeight, err := resolveStartHeight(syncStatusDAO, opts.ChainName, opts.StartHeight, specs)
	if err != nil {
		return nil, err
	}
	opts.StartHeight = startHeight
	logger.Infof("Indexer service will start from block height: %d (chain: %s)", startHeight, opts.ChainName)

	ctx, cancel := context.WithCancel(context.Background())
	return &IndexerService{
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
		client:        client,
		decoder:       decoder,
		scanner:       indexer.NewLogScanner(client, decoder, opts),
		opts:          opts,
		processor:     NewEventProcessor(db),
		syncStatusDAO: syncStatusDAO,
	}, nil
}

// resolveStartHeight choose the higher value between config and current sync height + 1.
// With neither, start at the earliest contract deployment block.
func resolveStartHeight(syncStatusDAO *dao.IndexerSyncStatusDAO, chainName string, configured uint64, specs []*indexer.ContractSpec) (uint64, error) {
	status, err := syncStatusDAO.GetByChainName(context.Background(), chainName)
	if err != nil {
		return 0, fmt.Errorf("load sync status: %w", err)
	}
	if status != nil {
		next := uint64(status.CurrentSyncHeight) + 1
		logger.Infof("Found existing sync status for %s chain, current sync height: %d", chainName, status.CurrentSyncHeight)
		if next > configured {
			logger.Infof("Using current sync height + 1 as start height: %d", next)
			return next, nil
		}
	}
	if configured > 0 {
		logger.Infof("Using configured start height: %d", configured)
		return configured, nil
	}

	var earliest uint64
	for i, spec := range specs {
		if i == 0 || spec.StartBlock < earliest {
			earliest = spec.StartBlock
		}
	}
	logger.Infof("No start height configured, starting from earliest contract block: %d", earliest)
	return earliest, nil
}

// Processor event processor shared by live scan and rescans
func (s *IndexerService) Processor() *EventProcessor {
	return s.processor
}

// ChainName chain label used for sync status and metrics
func (s *IndexerService) ChainName() string {
	return s.opts.ChainName
}

// StartHeight first block the live scanner will process
func (s *IndexerService) StartHeight() uint64 {
	return s.opts.StartHeight
}

// LatestBlockHeight latest block number reported by the node
func (s *IndexerService) LatestBlockHeight(ctx context.Context) (int64, error) {
	head, err := s.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block height: %w", err)
	}
	return int64(head), nil
}

// Start run the live scanner until Stop is called; blocks
func (s *IndexerService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	logger.Infof("Indexer service starting...")
	defer close(s.done)

	if err := s.scanner.Start(s.ctx, s.handleEvent, s.onRangeComplete); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("Indexer scanner stopped with error: %v", err)
	}
}

// Stop stops the indexer service and any running rescan
func (s *IndexerService) Stop() {
	logger.Infof("Stopping indexer service...")

	s.rescanMu.Lock()
	if s.currentRescanTask != nil && s.currentRescanTask.CancelFunc != nil {
		s.currentRescanTask.CancelFunc()
	}
	s.rescanMu.Unlock()

	s.cancel()
	if s.started.Load() {
		<-s.done
	}

	logger.Infof("Indexer service stopped")
}

func (s *IndexerService) handleEvent(ctx context.Context, event indexer.Event) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	_, err := s.processor.Apply(ctx, event)
	return err
}

// onRangeComplete called after each window is fully applied
func (s *IndexerService) onRangeComplete(to uint64) error {
	if err := s.syncStatusDAO.UpdateCurrentSyncHeight(context.Background(), s.opts.ChainName, int64(to)); err != nil {
		return fmt.Errorf("failed to update sync height: %w", err)
	}
	metrics.Indexer().SetSyncHeight(s.opts.ChainName, to)
	return nil
}

// RescanBlocksAsync asynchronously re-applies the logs of [startHeight, endHeight].
// Already processed events are skipped by the ledger, so only missed events take effect.
func (s *IndexerService) RescanBlocksAsync(startHeight, endHeight int64) (string, error) {
	// Check if a task is already running
	s.rescanMu.Lock()
	defer s.rescanMu.Unlock()
	if s.currentRescanTask != nil && s.currentRescanTask.status() == RescanStatusRunning {
		return "", fmt.Errorf("another rescan task is already running: %s", s.currentRescanTask.TaskID)
	}

	// Validate parameters
	if startHeight < 0 {
		return "", fmt.Errorf("start height must not be negative")
	}
	if endHeight < startHeight {
		return "", fmt.Errorf("end height must be greater than or equal to start height")
	}

	taskID := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	task := &RescanTask{
		TaskID:        taskID,
		Chain:         s.opts.ChainName,
		Status:        RescanStatusRunning,
		StartHeight:   startHeight,
		EndHeight:     endHeight,
		CurrentHeight: startHeight,
		TotalBlocks:   endHeight - startHeight + 1,
		StartTime:     time.Now(),
		CancelFunc:    cancel,
	}
	s.currentRescanTask = task

	go s.runRescan(ctx, task)

	logger.Infof("[Rescan %s] Rescan task queued: %s (height %d to %d)", task.Chain, taskID, startHeight, endHeight)
	return taskID, nil
}

func (s *IndexerService) runRescan(ctx context.Context, task *RescanTask) {
	logger.Infof("[Rescan %s] Starting rescan task: %s (height %d to %d)", task.Chain, task.TaskID, task.StartHeight, task.EndHeight)

	// a private scanner keeps its header cache apart from the live one
	scanner := indexer.NewLogScanner(s.client, s.decoder, s.opts)
	batch := s.opts.BatchSize
	if batch == 0 {
		batch = 500
	}

	status := RescanStatusCompleted
	defer func() {
		task.mu.Lock()
		task.Status = status
		task.mu.Unlock()
		task.CancelFunc()
		metrics.Indexer().RecordRescan(string(status))
	}()

	end := uint64(task.EndHeight)
	for from := uint64(task.StartHeight); from <= end; from += batch {
		if ctx.Err() != nil {
			status = RescanStatusCancelled
			logger.Infof("[Rescan %s] Task cancelled: %s at height %d", task.Chain, task.TaskID, from)
			return
		}

		to := from + batch - 1
		if to > end {
			to = end
		}
		n, err := scanner.ScanRange(ctx, from, to, s.handleEvent)
		if err != nil {
			if ctx.Err() != nil {
				status = RescanStatusCancelled
				logger.Infof("[Rescan %s] Task cancelled: %s at height %d", task.Chain, task.TaskID, from)
				return
			}
			status = RescanStatusFailed
			task.mu.Lock()
			task.ErrorMessage = fmt.Sprintf("Failed to scan blocks [%d, %d]: %v", from, to, err)
			task.mu.Unlock()
			logger.Errorf("[Rescan %s] Failed to scan blocks [%d, %d]: %v", task.Chain, from, to, err)
			return
		}

		// Update task progress
		task.mu.Lock()
		task.ProcessedBlocks += int64(to - from + 1)
		task.CurrentHeight = int64(to)
		task.DecodedEvents += int64(n)
		processed := task.ProcessedBlocks
		task.mu.Unlock()

		progress := float64(processed) / float64(task.TotalBlocks) * 100
		logger.Debugf("[Rescan %s] Progress: %.2f%% (%d/%d blocks)", task.Chain, progress, processed, task.TotalBlocks)

		if to == end {
			break
		}
	}

	elapsed := time.Since(task.StartTime)
	logger.Infof("[Rescan %s] Completed task %s: rescanned %d blocks in %v", task.Chain, task.TaskID, task.TotalBlocks, elapsed)
}

func (t *RescanTask) status() RescanTaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Status
}

// GetRescanStatus returns the current rescan task status
func (s *IndexerService) GetRescanStatus() *RescanTask {
	s.rescanMu.Lock()
	defer s.rescanMu.Unlock()

	if s.currentRescanTask == nil {
		// Return an idle task
		return &RescanTask{
			Chain:  s.opts.ChainName,
			Status: RescanStatusIdle,
		}
	}

	// Return a copy of the current task to avoid race conditions
	s.currentRescanTask.mu.RLock()
	defer s.currentRescanTask.mu.RUnlock()

	return &RescanTask{
		TaskID:          s.currentRescanTask.TaskID,
		Chain:           s.currentRescanTask.Chain,
		Status:          s.currentRescanTask.Status,
		StartHeight:     s.currentRescanTask.StartHeight,
		EndHeight:       s.currentRescanTask.EndHeight,
		CurrentHeight:   s.currentRescanTask.CurrentHeight,
		ProcessedBlocks: s.currentRescanTask.ProcessedBlocks,
		TotalBlocks:     s.currentRescanTask.TotalBlocks,
		DecodedEvents:   s.currentRescanTask.DecodedEvents,
		StartTime:       s.currentRescanTask.StartTime,
		ErrorMessage:    s.currentRescanTask.ErrorMessage,
	}
}

// StopRescan stops the current rescan task
func (s *IndexerService) StopRescan() error {
	s.rescanMu.Lock()
	defer s.rescanMu.Unlock()

	if s.currentRescanTask == nil {
		return fmt.Errorf("no rescan task is running")
	}

	if status := s.currentRescanTask.status(); status != RescanStatusRunning {
		return fmt.Errorf("rescan task is not running (status: %s)", status)
	}

	s.currentRescanTask.CancelFunc()
	logger.Infof("[Rescan] Stopping task: %s", s.currentRescanTask.TaskID)
	return nil
}
