package indexer_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storage-market-indexer/database"
	"storage-market-indexer/indexer"
	"storage-market-indexer/logger"
	"storage-market-indexer/metrics"
	"storage-market-indexer/model"
)

// ErrUnhandledEvent decoded event type without a handler
var ErrUnhandledEvent = errors.New("unhandled event type")

// EventProcessor applies decoded contract events to the entity store.
// Every event is applied in its own transaction together with its ledger row, so a replayed log is a no-op.
type EventProcessor struct {
	db database.Database
}

// NewEventProcessor create event processor; nil db means database.DB
func NewEventProcessor(db database.Database) *EventProcessor {
	if db == nil {
		db = database.DB
	}
	return &EventProcessor{db: db}
}

// Apply apply one event. applied is false when the event was already processed.
func (p *EventProcessor) Apply(ctx context.Context, ev indexer.Event) (bool, error) {
	meta := ev.Meta()
	contract := meta.ContractName
	started := time.Now()

	tx, err := p.db.Begin(ctx)
	if err != nil {
		metrics.Indexer().ObserveEvent(contract, meta.Name, metrics.OutcomeError, 0)
		return false, fmt.Errorf("begin tx: %w", err)
	}

	seen, err := loadExisting[model.EventRecord](tx, meta.EventID())
	if err != nil {
		tx.Rollback()
		metrics.Indexer().ObserveEvent(contract, meta.Name, metrics.OutcomeError, 0)
		return false, fmt.Errorf("check event ledger: %w", err)
	}
	if seen != nil {
		tx.Rollback()
		logger.Debugf("Event %s %s already processed, skip", meta.Name, meta.EventID())
		metrics.Indexer().ObserveEvent(contract, meta.Name, metrics.OutcomeDuplicate, 0)
		return false, nil
	}

	c := newEventCtx(tx, meta)
	if err := p.dispatch(c, ev); err != nil {
		tx.Rollback()
		metrics.Indexer().ObserveEvent(contract, meta.Name, metrics.OutcomeError, 0)
		return false, err
	}
	if err := c.flush(); err != nil {
		tx.Rollback()
		metrics.Indexer().ObserveEvent(contract, meta.Name, metrics.OutcomeError, 0)
		return false, fmt.Errorf("flush stats: %w", err)
	}

	record := &model.EventRecord{
		ID:              meta.EventID(),
		Contract:        model.AddressID(meta.Contract.Hex()),
		ContractKind:    string(meta.ContractKind),
		Name:            meta.Name,
		BlockNumber:     meta.BlockNumber,
		BlockTimestamp:  meta.BlockTimestamp,
		TransactionHash: meta.TxHash.Hex(),
		LogIndex:        meta.LogIndex,
		Params:          meta.Params,
		ProcessedAt:     time.Now().Unix(),
	}
	if err := tx.Put(record); err != nil {
		tx.Rollback()
		metrics.Indexer().ObserveEvent(contract, meta.Name, metrics.OutcomeError, 0)
		return false, fmt.Errorf("record event: %w", err)
	}

	touched := tx.Touched()
	if err := tx.Commit(); err != nil {
		metrics.Indexer().ObserveEvent(contract, meta.Name, metrics.OutcomeError, 0)
		return false, fmt.Errorf("commit: %w", err)
	}

	// a failed delete leaves entries stale until their TTL
	if err := database.DeleteCache(touched...); err != nil {
		logger.Warnf("Failed to invalidate cache after %s: %v", meta.EventID(), err)
	}

	metrics.Indexer().ObserveEvent(contract, meta.Name, metrics.OutcomeApplied, time.Since(started))
	return true, nil
}

// Handle adapts Apply to indexer.EventHandler
func (p *EventProcessor) Handle(ctx context.Context, ev indexer.Event) error {
	_, err := p.Apply(ctx, ev)
	return err
}

func (p *EventProcessor) dispatch(c *eventCtx, ev indexer.Event) error {
	switch e := ev.(type) {
	case *indexer.InstanceOwnerRegistered:
		return p.onInstanceOwnerRegistered(c, e)
	case *indexer.FileUploaded:
		return p.onFileUploaded(c, e)
	case *indexer.FileRemoved:
		return p.onFileRemoved(c, e)
	case *indexer.FileStatusUpdated:
		return p.onFileStatusUpdated(c, e)
	case *indexer.FreeLoadUpdated:
		return p.onFreeLoadUpdated(c, e)
	case *indexer.MaxLoadUpdated:
		return p.onMaxLoadUpdated(c, e)
	case *indexer.InstanceLockStatusUpdated:
		return p.onInstanceLockStatusUpdated(c, e)
	case *indexer.LoadIncreased:
		return p.onLoadIncreased(c, e)
	case *indexer.StorageNodeAdded:
		return p.onStorageNodeAdded(c, e)
	case *indexer.StorageNodeUpdated:
		return p.onStorageNodeUpdated(c, e)
	case *indexer.StorageNodeDeactivated:
		return p.onStorageNodeDeactivated(c, e)
	case *indexer.OwnershipTransferred:
		return p.onOwnershipTransferred(c, e)
	case *indexer.Paused:
		return p.onPaused(c, true)
	case *indexer.Unpaused:
		return p.onPaused(c, false)
	case *indexer.StorageProviderRegistered:
		return p.onStorageProviderRegistered(c, e)
	case *indexer.DataOrderCreated:
		return p.onDataOrderCreated(c, e)
	case *indexer.InstaShareContractUpdated:
		return p.onInstaShareContractUpdated(c, e)
	case *indexer.BatchSet:
		return p.onBatchSet(c, e)
	default:
		return fmt.Errorf("%w: %T", ErrUnhandledEvent, ev)
	}
}
